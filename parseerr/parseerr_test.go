package parseerr

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestErrorsIsSentinel(t *testing.T) {
	id := uuid.New()
	pos := 5
	err := UnknownSegment("widget", &pos, id)
	if !errors.Is(err, ErrUnknownSegment) {
		t.Error("expected errors.Is to match ErrUnknownSegment")
	}
	if got := err.Error(); got == "" {
		t.Error("expected non-empty error message")
	}
	if err.ParserID != id {
		t.Error("expected ParserID to round-trip")
	}
}

func TestMissingBracketPartnerMessage(t *testing.T) {
	err := MissingBracketPartner(nil, uuid.New())
	if !errors.Is(err, ErrMissingBracketPartner) {
		t.Error("expected errors.Is to match ErrMissingBracketPartner")
	}
	want := "MissingBracketPartner: couldn't find closing bracket for opening bracket"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
