package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateID_Generated(t *testing.T) {
	id := NewID()
	if len(id) != IDLength {
		t.Fatalf("len(NewID())=%d, want %d", len(id), IDLength)
	}
	if err := ValidateID(id); err != nil {
		t.Fatalf("ValidateID(%q) err=%v, want nil", id, err)
	}
}

func TestValidateID_Malformed(t *testing.T) {
	cases := []string{
		"",
		"123",
		"invalid-id",
		strings.Repeat("a", IDLength),                // right length, wrong charset
		"d9428888-122b-11e1-b85c-61cd3cbb326",        // one short
		"d9428888-122b-11e1-b85c-61cd3cbb3210a",      // one long
		"d9428888122b11e1b85c61cd3cbb3210",           // no hyphens
		"urn:uuid:d9428888-122b-11e1-b85c-61cd3cbb3", // wrong form
	}
	for _, id := range cases {
		err := ValidateID(id)
		if !errors.Is(err, ErrInvalidTaskID) {
			t.Fatalf("ValidateID(%q) err=%v, want %v", id, err, ErrInvalidTaskID)
		}
	}
}

func TestValidateID_WellFormed(t *testing.T) {
	if err := ValidateID("d9428888-122b-11e1-b85c-61cd3cbb3210"); err != nil {
		t.Fatalf("ValidateID err=%v, want nil", err)
	}
}
