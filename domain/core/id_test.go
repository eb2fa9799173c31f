package core

import "testing"

func TestNewRunID_Unique(t *testing.T) {
	seen := make(map[RunID]bool)
	for i := 0; i < 1000; i++ {
		id := NewRunID()
		if id.String() == "" {
			t.Fatal("generated run ID is empty")
		}
		if seen[id] {
			t.Fatalf("duplicate run ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestParseRunID(t *testing.T) {
	valid := NewRunID().String()
	id, err := ParseRunID(valid)
	if err != nil {
		t.Fatalf("parse valid ID: %v", err)
	}
	if id.String() != valid {
		t.Errorf("expected %s, got %s", valid, id)
	}

	if _, err := ParseRunID(""); err == nil {
		t.Error("expected error for empty ID")
	}
	if _, err := ParseRunID("  "); err == nil {
		t.Error("expected error for blank ID")
	}
	if _, err := ParseRunID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed ID")
	}
}
