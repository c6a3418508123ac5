// Package fixture builds a small, hand-assembled grammar.Tables standing in
// for the "dialect library" collaborator the core spec places out of scope
// (spec §1). It exists only to give the driver package's tests and
// cmd/sqlparse something concrete to parse against.
package fixture

import (
	"regexp"

	"github.com/parsekit/gramsql/grammar"
)

// Builder assembles a grammar.Tables instruction by instruction. Grammars
// are frequently mutually recursive (a SELECT's expression grammar may
// itself contain a bracketed sub-select), so callers first Reserve an ID
// for every rule they intend to define, then fill each one in with the
// matching Define* call in any order.
type Builder struct {
	t *grammar.Tables
}

// NewBuilder starts an empty table set.
func NewBuilder() *Builder {
	return &Builder{
		t: &grammar.Tables{
			SegmentNames: map[string]grammar.ID{},
			SegmentTypes: map[grammar.ID]string{},
		},
	}
}

// Reserve allocates a grammar ID without defining its instruction yet, so
// forward and mutually-recursive references can be wired up before the
// referenced rule itself is built.
func (b *Builder) Reserve() grammar.ID {
	id := grammar.ID(len(b.t.Insts))
	b.t.Insts = append(b.t.Insts, grammar.Inst{})
	return id
}

// SetRoot designates id as the whole-document entry point.
func (b *Builder) SetRoot(id grammar.ID) {
	b.t.Root = id
}

// Build returns the assembled table set.
func (b *Builder) Build() *grammar.Tables {
	return b.t
}

func (b *Builder) addString(s string) uint32 {
	idx := uint32(len(b.t.Strings))
	b.t.Strings = append(b.t.Strings, s)
	return idx
}

func (b *Builder) addChildIDs(ids []grammar.ID) (uint32, uint16) {
	start := uint32(len(b.t.ChildIDs))
	b.t.ChildIDs = append(b.t.ChildIDs, ids...)
	return start, uint16(len(ids))
}

func (b *Builder) addTerminators(ids []grammar.ID) (uint32, uint16) {
	start := uint32(len(b.t.Terminators))
	b.t.Terminators = append(b.t.Terminators, ids...)
	return start, uint16(len(ids))
}

func (b *Builder) addAux(vals ...uint32) uint32 {
	off := uint32(len(b.t.AuxData))
	b.t.AuxData = append(b.t.AuxData, vals...)
	return off
}

func (b *Builder) setAuxOffset(id grammar.ID, off uint32) {
	for uint32(len(b.t.AuxDataOffsets)) <= uint32(id) {
		b.t.AuxDataOffsets = append(b.t.AuxDataOffsets, 0)
	}
	b.t.AuxDataOffsets[id] = off
}

func (b *Builder) addRegex(re *regexp.Regexp) uint32 {
	idx := uint32(len(b.t.RegexPatterns))
	b.t.RegexPatterns = append(b.t.RegexPatterns, re)
	return idx
}

func (b *Builder) setHint(id grammar.ID, hint *grammar.SimpleHint) {
	for uint32(len(b.t.SimpleHints)) <= uint32(id) {
		b.t.SimpleHints = append(b.t.SimpleHints, nil)
	}
	b.t.SimpleHints[id] = hint
	b.t.Insts[id].Flags = b.t.Insts[id].Flags.With(grammar.HasSimpleHint)
}

// RawHint attaches a simple start-set hint built from literal raw values
// (spec §4.13). Token-type-based hints use TypedHint instead.
func (b *Builder) RawHint(id grammar.ID, rawValuesUpper ...string) {
	set := make(map[string]struct{}, len(rawValuesUpper))
	for _, v := range rawValuesUpper {
		set[v] = struct{}{}
	}
	b.setHint(id, &grammar.SimpleHint{RawValues: set})
}

// TypedHint attaches a simple start-set hint built from acceptable token
// types.
func (b *Builder) TypedHint(id grammar.ID, tokenTypes ...string) {
	set := make(map[string]struct{}, len(tokenTypes))
	for _, v := range tokenTypes {
		set[v] = struct{}{}
	}
	b.setHint(id, &grammar.SimpleHint{TokenTypes: set})
}

func (b *Builder) set(id grammar.ID, in grammar.Inst) {
	b.t.Insts[id] = in
}

// DefineSequence fills id in as a Sequence of children, matched strictly in
// order (spec §4.4).
func (b *Builder) DefineSequence(id grammar.ID, children []grammar.ID, mode grammar.ParseMode, flags grammar.Flags, terminators ...grammar.ID) {
	cStart, cCount := b.addChildIDs(children)
	tStart, tCount := b.addTerminators(terminators)
	b.set(id, grammar.Inst{
		Variant:            grammar.Sequence,
		ParseMode:          mode,
		Flags:              flags,
		FirstChildIdx:      cStart,
		ChildCount:         cCount,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// DefineOneOf fills id in as a OneOf over candidates (spec §4.5).
func (b *Builder) DefineOneOf(id grammar.ID, candidates []grammar.ID, flags grammar.Flags, exclude grammar.ID, hasExclude bool, terminators ...grammar.ID) {
	cStart, cCount := b.addChildIDs(candidates)
	tStart, tCount := b.addTerminators(terminators)
	if hasExclude {
		flags = flags.With(grammar.HasExclude)
		off := b.addAux(uint32(exclude))
		b.setAuxOffset(id, off)
	}
	b.set(id, grammar.Inst{
		Variant:            grammar.OneOf,
		Flags:              flags,
		FirstChildIdx:      cStart,
		ChildCount:         cCount,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// AnyNumberOfSpec bundles the repetition configuration shared by
// AnyNumberOf (spec §4.6) and AnySetOf (spec §4.10).
type AnyNumberOfSpec struct {
	Min           int
	Max           *int
	MaxPerElement *int
	Exclude       grammar.ID
	HasExclude    bool
}

func (b *Builder) defineAnyNumberOf(id grammar.ID, variant grammar.Variant, elements []grammar.ID, spec AnyNumberOfSpec, flags grammar.Flags, terminators []grammar.ID) {
	cStart, cCount := b.addChildIDs(elements)
	tStart, tCount := b.addTerminators(terminators)
	maxVal := grammar.Unbounded
	if spec.Max != nil {
		maxVal = uint32(*spec.Max)
	}
	maxPerVal := grammar.Unbounded
	if spec.MaxPerElement != nil {
		maxPerVal = uint32(*spec.MaxPerElement)
	}
	excludeVal := grammar.NoIndex
	if spec.HasExclude {
		flags = flags.With(grammar.HasExclude)
		excludeVal = uint32(spec.Exclude)
	}
	off := b.addAux(maxVal, maxPerVal, excludeVal)
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{
		Variant:            variant,
		Flags:              flags,
		MinTimes:           uint16(spec.Min),
		FirstChildIdx:      cStart,
		ChildCount:         cCount,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// DefineAnyNumberOf fills id in as an AnyNumberOf.
func (b *Builder) DefineAnyNumberOf(id grammar.ID, elements []grammar.ID, spec AnyNumberOfSpec, flags grammar.Flags, terminators ...grammar.ID) {
	b.defineAnyNumberOf(id, grammar.AnyNumberOf, elements, spec, flags, terminators)
}

// DefineAnySetOf fills id in as an AnySetOf.
func (b *Builder) DefineAnySetOf(id grammar.ID, elements []grammar.ID, spec AnyNumberOfSpec, flags grammar.Flags, terminators ...grammar.ID) {
	b.defineAnyNumberOf(id, grammar.AnySetOf, elements, spec, flags, terminators)
}

// DefineDelimited fills id in as a Delimited list of elements separated by
// delimiter (spec §4.7).
func (b *Builder) DefineDelimited(id grammar.ID, elements []grammar.ID, delimiter grammar.ID, minDelimiters int, flags grammar.Flags, terminators ...grammar.ID) {
	children := make([]grammar.ID, 0, len(elements)+1)
	children = append(children, elements...)
	delimIdx := len(children)
	children = append(children, delimiter)

	cStart, cCount := b.addChildIDs(children)
	tStart, tCount := b.addTerminators(terminators)
	off := b.addAux(uint32(delimIdx))
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{
		Variant:            grammar.Delimited,
		Flags:              flags,
		MinTimes:           uint16(minDelimiters),
		FirstChildIdx:      cStart,
		ChildCount:         cCount,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// DefineBracketed fills id in as a Bracketed [start, content..., end] group
// (spec §4.8).
func (b *Builder) DefineBracketed(id grammar.ID, start, end grammar.ID, content []grammar.ID, flags grammar.Flags, terminators ...grammar.ID) {
	children := make([]grammar.ID, 0, len(content)+2)
	children = append(children, start)
	children = append(children, content...)
	children = append(children, end)
	startIdx := 0
	endIdx := len(children) - 1

	cStart, cCount := b.addChildIDs(children)
	tStart, tCount := b.addTerminators(terminators)
	off := b.addAux(uint32(startIdx), uint32(endIdx))
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{
		Variant:            grammar.Bracketed,
		Flags:              flags,
		FirstChildIdx:      cStart,
		ChildCount:         cCount,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// DefineRef fills id in as a Ref to name (or, if hasExplicit, directly to
// explicitTarget bypassing name resolution) — spec §4.9. Registers name in
// the dialect's segment name table so other Refs can resolve it.
func (b *Builder) DefineRef(id grammar.ID, name, segmentType string, explicitTarget grammar.ID, hasExplicit bool, exclude grammar.ID, hasExclude bool, flags grammar.Flags, terminators ...grammar.ID) {
	nameIdx := b.addString(name)
	tStart, tCount := b.addTerminators(terminators)

	if hasExplicit || hasExclude {
		targetVal := grammar.NoIndex
		if hasExplicit {
			flags = flags.With(grammar.HasExplicitTarget)
			targetVal = uint32(explicitTarget)
		}
		excludeVal := grammar.NoIndex
		if hasExclude {
			flags = flags.With(grammar.HasExclude)
			excludeVal = uint32(exclude)
		}
		off := b.addAux(targetVal, excludeVal)
		b.setAuxOffset(id, off)
	}

	if segmentType != "" {
		b.t.SegmentTypes[id] = segmentType
	}
	b.t.SegmentNames[name] = id

	b.set(id, grammar.Inst{
		Variant:            grammar.Ref,
		Flags:              flags,
		FirstChildIdx:      nameIdx,
		FirstTerminatorIdx: tStart,
		TerminatorCount:    tCount,
	})
}

// DefineStringParser fills id in as a literal, case-insensitive keyword
// matcher (spec §4.3).
func (b *Builder) DefineStringParser(id grammar.ID, literal string, producedType string) {
	tmplIdx := b.addString(literal)
	typeIdx := b.addString(producedType)
	off := b.addAux(typeIdx)
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{Variant: grammar.StringParser, FirstChildIdx: tmplIdx})
}

// DefineMultiStringParser fills id in as a case-insensitive match against
// any of alternatives.
func (b *Builder) DefineMultiStringParser(id grammar.ID, alternatives []string, producedType string) {
	start := uint32(len(b.t.AuxData))
	for _, alt := range alternatives {
		b.t.AuxData = append(b.t.AuxData, b.addString(alt))
	}
	typeIdx := b.addString(producedType)
	off := b.addAux(typeIdx)
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{
		Variant:       grammar.MultiStringParser,
		FirstChildIdx: start,
		ChildCount:    uint16(len(alternatives)),
	})
}

// DefineTypedParser fills id in as a matcher requiring an exact token type.
// The matched type lives in the aux block (what ProducedTokenType reads);
// FirstChildIdx mirrors the same string index for Template's benefit.
func (b *Builder) DefineTypedParser(id grammar.ID, tokenType string) {
	typeIdx := b.addString(tokenType)
	off := b.addAux(typeIdx)
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{Variant: grammar.TypedParser, FirstChildIdx: typeIdx})
}

// DefineToken fills id in as a matcher requiring an exact raw token value
// (case-sensitive, unlike StringParser — used for punctuation). The raw
// text doubles as the produced CST leaf's token type tag.
func (b *Builder) DefineToken(id grammar.ID, raw string) {
	rawIdx := b.addString(raw)
	b.set(id, grammar.Inst{Variant: grammar.Token, FirstChildIdx: rawIdx})
}

// DefineRegexParser fills id in as a pattern matcher, with an optional
// anti-pattern that vetoes an otherwise-successful match.
func (b *Builder) DefineRegexParser(id grammar.ID, pattern *regexp.Regexp, producedType string, antiPattern *regexp.Regexp) {
	patIdx := b.addRegex(pattern)
	typeIdx := b.addString(producedType)
	flags := grammar.Flags(0)
	antiIdx := grammar.NoIndex
	if antiPattern != nil {
		flags = flags.With(grammar.HasAntiTemplate)
		antiIdx = b.addRegex(antiPattern)
	}
	off := b.addAux(antiIdx, typeIdx)
	b.setAuxOffset(id, off)
	b.set(id, grammar.Inst{Variant: grammar.RegexParser, Flags: flags, FirstChildIdx: patIdx})
}

// DefineMeta fills id in as a metadata-token matcher. An empty tag matches
// any meta token.
func (b *Builder) DefineMeta(id grammar.ID, tag string) {
	tagIdx := b.addString(tag)
	b.set(id, grammar.Inst{Variant: grammar.Meta, FirstChildIdx: tagIdx})
}

// DefineNonCodeMatcher fills id in as a single-transparent-token matcher.
func (b *Builder) DefineNonCodeMatcher(id grammar.ID) {
	b.set(id, grammar.Inst{Variant: grammar.NonCodeMatcher})
}

// DefineNothing fills id in as a matcher that always fails to match,
// without consuming input.
func (b *Builder) DefineNothing(id grammar.ID) {
	b.set(id, grammar.Inst{Variant: grammar.Nothing})
}

// DefineAnything fills id in as a matcher that greedily claims every token
// up to the active terminator boundary.
func (b *Builder) DefineAnything(id grammar.ID) {
	b.set(id, grammar.Inst{Variant: grammar.Anything})
}

// DefineEmpty fills id in as an always-empty placeholder.
func (b *Builder) DefineEmpty(id grammar.ID) {
	b.set(id, grammar.Inst{Variant: grammar.Empty, Flags: grammar.Optional})
}

// DefineMissing fills id in as a placeholder for a rule the dialect table
// never finished wiring up. Encountering it at parse time is a defect in
// the table, not a recoverable mismatch, and aborts the parse.
func (b *Builder) DefineMissing(id grammar.ID) {
	b.set(id, grammar.Inst{Variant: grammar.Missing})
}
