package grammar

import "regexp"

// Inst is a single grammar instruction. Real implementations pack this into
// 20 bytes (spec §3.2); the Go struct keeps the same field set without
// chasing that exact byte layout, since Go's field alignment rules would
// fight a hand-packed 20-byte struct without unsafe tricks that buy nothing
// here — the table is still a flat, contiguous, read-only []Inst, which is
// the property that actually matters (spec §9: flat arrays, not a tree of
// heap-allocated nodes).
type Inst struct {
	Variant   Variant
	ParseMode ParseMode
	Flags     Flags

	// FirstChildIdx and ChildCount slice into Tables.ChildIDs, with a
	// variant-specific alternate meaning documented per variant in
	// context.go (Ref's target name index, a terminal's template index,
	// a RegexParser's pattern index, ...).
	FirstChildIdx uint32
	ChildCount    uint16

	// MinTimes is the minimum repetition count for AnyNumberOf/AnySetOf,
	// or the minimum delimiter count for Delimited.
	MinTimes uint16

	// FirstTerminatorIdx and TerminatorCount slice into Tables.Terminators.
	FirstTerminatorIdx uint32
	TerminatorCount    uint16
}

// IsOptional reports whether an instruction may legally produce an empty
// match without that being a failure, matching the source's is_optional:
// for AnyNumberOf/AnySetOf this is also true whenever MinTimes is zero,
// even without the OPTIONAL flag set explicitly.
func (in Inst) IsOptional() bool {
	if in.Variant == AnyNumberOf || in.Variant == AnySetOf {
		return in.Flags.Has(Optional) || in.MinTimes == 0
	}
	return in.Flags.Has(Optional)
}

// SimpleHint is a precomputed start-set used to prune alternatives before
// attempting a tentative parse (spec §4.13). A nil *SimpleHint means
// "complex — cannot prune".
type SimpleHint struct {
	RawValues  map[string]struct{}
	TokenTypes map[string]struct{}
}

// Matches reports whether a token with the given uppercased raw text and
// token type could plausibly start a grammar carrying this hint.
func (h *SimpleHint) Matches(rawUpper, tokenType string) bool {
	if h == nil {
		return true
	}
	if _, ok := h.RawValues[rawUpper]; ok {
		return true
	}
	_, ok := h.TokenTypes[tokenType]
	return ok
}

// Tables is the complete, immutable grammar of a dialect: the flat
// instruction array plus every side table it indexes into (spec §3.2).
// Populating a Tables value is the responsibility of an external
// dialect-table collaborator (spec §1); this package only provides the
// accessor layer (Context) over an already-built Tables.
type Tables struct {
	Insts       []Inst
	ChildIDs    []ID
	Terminators []ID
	Strings     []string

	// AuxData holds variant-specific extras; AuxDataOffsets[id] is the
	// offset into AuxData for grammar id's extras block. See context.go
	// for the per-variant layout of that block.
	AuxData        []uint32
	AuxDataOffsets []uint32

	RegexPatterns []*regexp.Regexp

	// SimpleHints[id] is the hint for grammar id, or nil.
	SimpleHints []*SimpleHint

	// SegmentNames maps a rule name to its grammar id, used by Ref
	// resolution and by the engine's diagnostic lookups (spec §6).
	SegmentNames map[string]ID

	// SegmentTypes optionally names the downstream-visible "kind" of a
	// Ref'd rule, independent of its grammar id (spec §4.9: "preserving
	// the Ref's declared segment_type for downstream consumers").
	SegmentTypes map[ID]string

	// Root is the designated entry-point grammar id (spec §6).
	Root ID
}

// Lookup resolves a rule name to its grammar id (spec §6:
// "segment_grammar_by_name").
func (t *Tables) Lookup(name string) (ID, bool) {
	id, ok := t.SegmentNames[name]
	return id, ok
}
