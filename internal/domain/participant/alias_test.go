package participant

import (
	"errors"
	"testing"
)

func TestAliasTable_Resolve(t *testing.T) {
	table, err := NewAliasTable([]AliasEntry{
		{RawVariant: "Jonathan Smith", ParticipantKey: "7"},
		{RawVariant: "Jon", ParticipantKey: "7"},
		{RawVariant: "Smithy", ParticipantKey: "7"},
		{RawVariant: "Zoë Adams", ParticipantKey: "9"},
	})
	if err != nil {
		t.Fatalf("new alias table: %v", err)
	}

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "Jonathan Smith", want: "7", wantOK: true},
		{raw: "  jonathan   SMITH ", want: "7", wantOK: true},
		{raw: "jon", want: "7", wantOK: true},
		{raw: "SMITHY", want: "7", wantOK: true},
		{raw: "Zoe Adams", want: "9", wantOK: true},
		{raw: "Jonny", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, tc := range tests {
		got, ok := table.Resolve(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("Resolve(%q): got=(%q,%t) want=(%q,%t)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNewAliasTable_Conflict(t *testing.T) {
	_, err := NewAliasTable([]AliasEntry{
		{RawVariant: "Sam", ParticipantKey: "3"},
		{RawVariant: "sam ", ParticipantKey: "4"},
	})
	if !errors.Is(err, ErrConflictingAlias) {
		t.Fatalf("expected ErrConflictingAlias, got %v", err)
	}
}

func TestNewAliasTable_DuplicateSameKeyAllowed(t *testing.T) {
	table, err := NewAliasTable([]AliasEntry{
		{RawVariant: "Sam", ParticipantKey: "3"},
		{RawVariant: "SAM", ParticipantKey: "3"},
	})
	if err != nil {
		t.Fatalf("new alias table: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected one folded variant, got %d", table.Len())
	}
}

func TestNewAliasTable_InvalidEntry(t *testing.T) {
	if _, err := NewAliasTable([]AliasEntry{{RawVariant: "Sam"}}); err == nil {
		t.Fatalf("expected error for entry without participant key")
	}
}
