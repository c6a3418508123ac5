// Package grammar holds the flat, read-only table representation of a
// dialect's grammar (spec §3.2) and the typed accessor layer over it (spec
// §4.1). Populating these tables is the job of an external "dialect
// library" collaborator; this package only consumes them.
package grammar

import "math"

// ID identifies a single grammar instruction within a Tables' Insts array.
// IDs are plain integers, never object references, so the grammar graph can
// live in flat arrays instead of a tree of heap-allocated nodes (spec §9).
type ID uint32

// NonCode is a reserved sentinel meaning "terminate on the next non-code
// token" without needing a real grammar table entry (spec §3.2).
const NonCode ID = ID(math.MaxUint32 - 1)

// Variant is the grammar instruction's combinator or terminal kind.
type Variant uint8

const (
	Sequence Variant = iota
	AnyNumberOf
	OneOf
	AnySetOf
	Delimited
	Bracketed
	Ref
	StringParser
	MultiStringParser
	TypedParser
	RegexParser
	Meta
	NonCodeMatcher
	Nothing
	Anything
	Empty
	Missing
	Token
)

func (v Variant) String() string {
	switch v {
	case Sequence:
		return "Sequence"
	case AnyNumberOf:
		return "AnyNumberOf"
	case OneOf:
		return "OneOf"
	case AnySetOf:
		return "AnySetOf"
	case Delimited:
		return "Delimited"
	case Bracketed:
		return "Bracketed"
	case Ref:
		return "Ref"
	case StringParser:
		return "StringParser"
	case MultiStringParser:
		return "MultiStringParser"
	case TypedParser:
		return "TypedParser"
	case RegexParser:
		return "RegexParser"
	case Meta:
		return "Meta"
	case NonCodeMatcher:
		return "NonCodeMatcher"
	case Nothing:
		return "Nothing"
	case Anything:
		return "Anything"
	case Empty:
		return "Empty"
	case Missing:
		return "Missing"
	case Token:
		return "Token"
	default:
		return "Unknown"
	}
}

// ParseMode controls whether a combinator that cannot fully match its
// window fails locally (Strict) or emits an Unparsable subtree for the
// unmatched tail (Greedy, GreedyOnceStarted) — spec §4.12.
type ParseMode uint8

const (
	Strict ParseMode = iota
	Greedy
	GreedyOnceStarted
)

func (m ParseMode) String() string {
	switch m {
	case Strict:
		return "Strict"
	case Greedy:
		return "Greedy"
	case GreedyOnceStarted:
		return "GreedyOnceStarted"
	default:
		return "Unknown"
	}
}

// Unbounded marks an AnyNumberOf max_times or max_per_element as having no
// upper limit (spec §3.2).
const Unbounded uint32 = math.MaxUint32

// NoIndex marks an optional aux-data slot (exclude grammar, explicit ref
// target, anti-template pattern, ...) as absent.
const NoIndex uint32 = math.MaxUint32
