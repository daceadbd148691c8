package textparse

import (
	"reflect"
	"testing"
)

func TestExtractDictPureJSON(t *testing.T) {
	reply := `{"thought": "x", "actions": ["open_gmail()"]}`
	result := ExtractDict(reply)
	if result["thought"] != "x" {
		t.Errorf("expected thought 'x', got %v", result["thought"])
	}
	actions, ok := result["actions"].([]any)
	if !ok || len(actions) != 1 || actions[0] != "open_gmail()" {
		t.Errorf("unexpected actions: %v", result["actions"])
	}
}

func TestExtractDictFenced(t *testing.T) {
	reply := "```json\n{\"thought\": \"opening gmail\", \"actions\": [\"open_gmail()\"]}\n```"
	result := ExtractDict(reply)
	if result["thought"] != "opening gmail" {
		t.Errorf("expected thought, got %v", result["thought"])
	}
}

func TestExtractDictEmbeddedInProse(t *testing.T) {
	reply := `Sure, here is my plan: {"thought": "plan", "actions": ["read_emails()"]} Let me know!`
	result := ExtractDict(reply)
	if result["thought"] != "plan" {
		t.Errorf("expected thought 'plan', got %v", result["thought"])
	}
}

func TestExtractDictPythonLiterals(t *testing.T) {
	reply := `{'thought': None, 'actions': ['open_drive()']}`
	result := ExtractDict(reply)
	if result["thought"] != nil {
		t.Errorf("expected nil thought, got %v", result["thought"])
	}
	actions, ok := result["actions"].([]any)
	if !ok || len(actions) != 1 || actions[0] != "open_drive()" {
		t.Errorf("unexpected actions: %v", result["actions"])
	}
}

func TestExtractDictNoBraces(t *testing.T) {
	result := ExtractDict("This is just plain text without any dictionary.")
	if len(result) != 0 {
		t.Errorf("expected empty map, got %v", result)
	}
}

func TestExtractDictUnparseable(t *testing.T) {
	result := ExtractDict(`{"thought": unquoted garbage,}`)
	if len(result) != 0 {
		t.Errorf("expected empty map, got %v", result)
	}
}

func TestExtractListSimple(t *testing.T) {
	result := ExtractList(`The actions are ["open_gmail()", "read_emails()"] as requested.`)
	want := []any{"open_gmail()", "read_emails()"}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("expected %v, got %v", want, result)
	}
}

func TestExtractListSpansLines(t *testing.T) {
	result := ExtractList("[\"a\",\n\"b\"]")
	want := []any{"a", "b"}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("expected %v, got %v", want, result)
	}
}

func TestExtractListSingleQuoted(t *testing.T) {
	result := ExtractList(`Here you go: ['open_gmail()', 'read_emails()']`)
	want := []any{"open_gmail()", "read_emails()"}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("expected %v, got %v", want, result)
	}
}

func TestExtractListAbsent(t *testing.T) {
	result := ExtractList("no lists here")
	if len(result) != 0 {
		t.Errorf("expected empty slice, got %v", result)
	}
}

func TestExtractListMalformed(t *testing.T) {
	result := ExtractList("[not, valid, literals]")
	if len(result) != 0 {
		t.Errorf("expected empty slice, got %v", result)
	}
}
