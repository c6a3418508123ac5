// Package parseerr defines the fatal-error taxonomy of the core parsing
// engine (spec §7). Local mismatches and greedy-unparsable regions are
// never represented as errors here — only the conditions that abort a
// parse_root call outright.
package parseerr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a fatal parse error.
type Kind int

const (
	KindUnknownSegment Kind = iota
	KindMissingBracketPartner
	KindMalformedGrammar
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindUnknownSegment:
		return "UnknownSegment"
	case KindMissingBracketPartner:
		return "MissingBracketPartner"
	case KindMalformedGrammar:
		return "MalformedGrammar"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Sentinel base errors, one per Kind, following the teacher's convention of
// package-level errors.New values wrapped with %w at the call site
// (nihei9-vartan grammar/semantic_error.go).
var (
	ErrUnknownSegment        = errors.New("unknown segment")
	ErrMissingBracketPartner = errors.New("couldn't find closing bracket for opening bracket")
	ErrMalformedGrammar      = errors.New("malformed grammar instruction")
)

func baseFor(k Kind) error {
	switch k {
	case KindUnknownSegment:
		return ErrUnknownSegment
	case KindMissingBracketPartner:
		return ErrMissingBracketPartner
	case KindMalformedGrammar:
		return ErrMalformedGrammar
	default:
		return errors.New("internal parser error")
	}
}

// ParseError is the single error type a Parser returns on fatal failure
// (spec §6: "a single CST node on success, or a ParseError{message,
// position?, context?} on fatal failure").
type ParseError struct {
	Kind    Kind
	Message string
	// Pos is the token index at which the error occurred, when known.
	Pos *int
	// ParserID identifies which Parser instance raised this error, so a
	// caller juggling several concurrent parses can tell them apart
	// (spec §5: "multiple parsers may run concurrently").
	ParserID uuid.UUID

	base error
}

// New builds a ParseError of the given kind.
func New(kind Kind, message string, pos *int, parserID uuid.UUID) *ParseError {
	return &ParseError{Kind: kind, Message: message, Pos: pos, ParserID: parserID, base: baseFor(kind)}
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" && e.base != nil {
		msg = e.base.Error()
	}
	if e.Pos != nil {
		return fmt.Sprintf("%s at token %d: %s", e.Kind, *e.Pos, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap lets callers use errors.Is/errors.As against the Kind-specific
// sentinel.
func (e *ParseError) Unwrap() error {
	return e.base
}

// UnknownSegment builds the "Ref targets a name not present in the dialect
// table" fatal error.
func UnknownSegment(name string, pos *int, parserID uuid.UUID) *ParseError {
	return New(KindUnknownSegment, fmt.Sprintf("unknown segment: %s", name), pos, parserID)
}

// MissingBracketPartner builds the fatal "token stream promised a matching
// closer that was not there" error.
func MissingBracketPartner(pos *int, parserID uuid.UUID) *ParseError {
	return New(KindMissingBracketPartner, "", pos, parserID)
}

// MalformedGrammar builds the fatal "Missing variant or otherwise malformed
// instruction" error.
func MalformedGrammar(detail string, pos *int, parserID uuid.UUID) *ParseError {
	return New(KindMalformedGrammar, detail, pos, parserID)
}
