package actions

import (
	"strings"
	"testing"
)

func TestLookupKnownActions(t *testing.T) {
	tests := []struct {
		name string
		id   int
	}{
		{"open_gmail", 1},
		{"send_email", 2},
		{"read_emails", 3},
		{"open_drive", 4},
		{"create_document", 5},
		{"read_document", 6},
		{"open_calendar", 7},
		{"create_event", 8},
		{"list_events", 9},
		{"share_document", 10},
		{"add_task", 11},
		{"complete_task", 12},
		{"search_files", 13},
	}
	for _, tt := range tests {
		id, ok := Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.name)
			continue
		}
		if id != tt.id {
			t.Errorf("Lookup(%q) = %d, want %d", tt.name, id, tt.id)
		}
	}
}

func TestLookupUnknownAction(t *testing.T) {
	if _, ok := Lookup("bogus_action"); ok {
		t.Error("expected unknown action to report not found")
	}
}

func TestCatalogueSize(t *testing.T) {
	if got := len(Catalogue()); got != 13 {
		t.Errorf("expected 13 catalogued actions, got %d", got)
	}
}

func TestCatalogueIDOrder(t *testing.T) {
	for i, d := range Catalogue() {
		if d.ID != i+1 {
			t.Errorf("catalogue[%d] has id %d, want %d", i, d.ID, i+1)
		}
	}
}

func TestSignatureList(t *testing.T) {
	list := SignatureList()
	if !strings.Contains(list, "2. send_email(recipient, subject, body)") {
		t.Errorf("signature list missing send_email entry:\n%s", list)
	}
	if got := strings.Count(list, "\n"); got != 13 {
		t.Errorf("expected 13 lines, got %d", got)
	}
}
