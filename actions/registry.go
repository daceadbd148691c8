// Package actions catalogues the Google Workspace operations the downstream
// automation can perform.
//
// The catalogue is a closed set fixed at process start. Numeric ids are
// stable and never reused; the browser extension dispatches on them.
package actions

import "fmt"

// Descriptor describes one catalogued action.
type Descriptor struct {
	Name      string
	ID        int
	Signature string
}

// The 13 supported actions, in id order. Signatures feed the system
// instruction catalogue verbatim.
var catalogue = []Descriptor{
	{"open_gmail", 1, "open_gmail()"},
	{"send_email", 2, "send_email(recipient, subject, body)"},
	{"read_emails", 3, "read_emails()"},
	{"open_drive", 4, "open_drive()"},
	{"create_document", 5, "create_document(doc_name, content)"},
	{"read_document", 6, "read_document(doc_name)"},
	{"open_calendar", 7, "open_calendar()"},
	{"create_event", 8, "create_event(title, date, time, location)"},
	{"list_events", 9, "list_events()"},
	{"share_document", 10, "share_document(doc_name, user_email)"},
	{"add_task", 11, "add_task(task_title, task_description)"},
	{"complete_task", 12, "complete_task(task_id)"},
	{"search_files", 13, "search_files(query)"},
}

var byName = buildIndex()

func buildIndex() map[string]int {
	index := make(map[string]int, len(catalogue))
	for _, d := range catalogue {
		index[d.Name] = d.ID
	}
	return index
}

// Lookup returns the numeric id for an action name. The second return is
// false for names outside the catalogue; callers must skip such actions
// rather than fabricate an id.
func Lookup(name string) (int, bool) {
	id, ok := byName[name]
	return id, ok
}

// Catalogue returns the full action list in id order.
func Catalogue() []Descriptor {
	result := make([]Descriptor, len(catalogue))
	copy(result, catalogue)
	return result
}

// SignatureList renders the catalogue as a numbered list for prompt text.
func SignatureList() string {
	var s string
	for _, d := range catalogue {
		s += fmt.Sprintf("%d. %s\n", d.ID, d.Signature)
	}
	return s
}
