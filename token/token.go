// Package token defines the immutable token record the core parsing engine
// consumes. The lexer that produces these tokens is an external
// collaborator; this package only models the contract at that boundary.
package token

// Type is the canonical tag a lexer assigns to a token.
type Type string

// Well-known token types the engine treats specially. A dialect's lexer may
// emit additional types (keyword, numeric_literal, ...); the engine only
// cares about the ones below for gap handling and root-level trimming.
const (
	TypeWhitespace Type = "whitespace"
	TypeNewline    Type = "newline"
	TypeComment    Type = "comment"
	TypeMeta       Type = "meta"
	TypeEndOfFile  Type = "end_of_file"
)

// PositionMarker is an opaque blob carried through unchanged by the core.
// Templating and source-position computation are out of scope (spec §1); a
// reimplementation may use any fixed-size value here.
type PositionMarker struct {
	// SourceSlice is the byte range in the original (possibly templated)
	// source file this token came from.
	SourceSlice [2]int
	// Line and Col are 1-based human-facing coordinates in the rendered
	// (post-templating) source.
	Line int
	Col  int
}

// Token is one lexeme. Once produced by the lexer, a token is never mutated
// by the core; the token slice handed to the engine is immutable for the
// duration of a parse (spec §3.1, §5).
type Token struct {
	Raw       string
	TokenType Type

	IsCode       bool
	IsWhitespace bool
	IsComment    bool
	IsMeta       bool

	PosMarker PositionMarker

	// MatchingBracketIdx is the index, in the owning slice, of this token's
	// matching bracket partner. It is set on both the opener and the
	// closer (symmetric) and is nil for every other token.
	MatchingBracketIdx *int
}

// IsTransparent reports whether t may be absorbed by any grammar with
// allow_gaps set (spec GLOSSARY: "Transparent token").
func (t Token) IsTransparent() bool {
	return t.IsWhitespace || t.TokenType == TypeNewline || t.IsComment || t.IsMeta
}

// IsOpenBracket reports whether t opens one of the three bracket kinds the
// lexer is required to pair (spec §6).
func (t Token) IsOpenBracket() bool {
	switch t.Raw {
	case "(", "[", "{":
		return true
	default:
		return false
	}
}

// Stream is a finite, ordered, fully materialized token sequence. The core
// is not a streaming parser (spec §1 Non-goals): a Stream is built once and
// read randomly by index for the duration of a parse.
type Stream []Token

// Len returns the number of tokens, including the trailing end_of_file
// token.
func (s Stream) Len() int { return len(s) }

// At returns the token at i. It does no bounds checking of its own;
// callers are expected to bounds-check against Len before calling.
func (s Stream) At(i int) Token { return s[i] }

// LastCodeIndexBefore returns the index of the last code (non-transparent)
// token at or before idx (exclusive upper bound), or -1 if none exists. It
// implements the "skip stop index backward to code" helper used when
// pruning a terminator match back to the last meaningful token (spec
// §4.11).
func (s Stream) LastCodeIndexBefore(idx int) int {
	for i := idx - 1; i >= 0; i-- {
		if s[i].IsCode {
			return i
		}
	}
	return -1
}
