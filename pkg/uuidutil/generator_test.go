package uuidutil

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	if a == b {
		t.Error("expected distinct ids")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("generated id must parse: %v", err)
	}
}

func TestShort(t *testing.T) {
	if got := Short("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Errorf("unexpected short id %q", got)
	}
	if got := Short("abc"); got != "abc" {
		t.Errorf("short ids must pass through, got %q", got)
	}
}
