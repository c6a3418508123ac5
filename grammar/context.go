package grammar

import (
	"fmt"
	"regexp"

	"github.com/parsekit/gramsql/token"
)

// Context is a pure, read-only accessor over a Tables value. Every method
// is an O(1) array lookup plus bounds-checked slicing (spec §4.1); Context
// never mutates the Tables it wraps and holds no parse state of its own, so
// a single Context is safely shared by every concurrently running Parser
// over the same dialect (spec §5).
type Context struct {
	t *Tables
}

// NewContext wraps t in a Context.
func NewContext(t *Tables) *Context {
	return &Context{t: t}
}

// Tables returns the underlying table set.
func (c *Context) Tables() *Tables { return c.t }

// Root returns the grammar id a whole-document parse should start from.
func (c *Context) Root() ID { return c.t.Root }

// Inst returns the instruction for id.
func (c *Context) Inst(id ID) Inst {
	return c.t.Insts[id]
}

// Variant returns the variant of id.
func (c *Context) Variant(id ID) Variant {
	return c.t.Insts[id].Variant
}

// Children returns the child grammar ids of id, for every combinator whose
// children live directly in ChildIDs (Sequence, OneOf, AnySetOf,
// AnyNumberOf, Delimited, Bracketed).
func (c *Context) Children(id ID) []ID {
	in := c.t.Insts[id]
	start := in.FirstChildIdx
	end := start + uint32(in.ChildCount)
	return c.t.ChildIDs[start:end]
}

// ElementChildren returns the children a OneOf/AnyNumberOf/AnySetOf should
// try to match against, i.e. Children with the exclude grammar (if any)
// already factored out. In this table encoding the exclude grammar is
// never included in ChildIDs, so this is simply Children; the method
// exists to name the spec §4.1 concept explicitly at call sites.
func (c *Context) ElementChildren(id ID) []ID {
	return c.Children(id)
}

// Terminators returns the locally declared terminator grammar ids of id.
func (c *Context) Terminators(id ID) []ID {
	in := c.t.Insts[id]
	start := in.FirstTerminatorIdx
	end := start + uint32(in.TerminatorCount)
	return c.t.Terminators[start:end]
}

// Hint returns the simple-hint for id, or nil if it is complex / has none.
func (c *Context) Hint(id ID) *SimpleHint {
	if !c.t.Insts[id].Flags.Has(HasSimpleHint) {
		return nil
	}
	if int(id) >= len(c.t.SimpleHints) {
		return nil
	}
	return c.t.SimpleHints[id]
}

func (c *Context) auxOffset(id ID) uint32 {
	return c.t.AuxDataOffsets[id]
}

// Exclude returns the exclude grammar id declared for a OneOf/Ref/
// AnyNumberOf instruction, if any.
func (c *Context) Exclude(id ID) (ID, bool) {
	in := c.t.Insts[id]
	if !in.Flags.Has(HasExclude) {
		return 0, false
	}
	off := c.auxOffset(id)
	switch in.Variant {
	case AnyNumberOf, AnySetOf:
		v := c.t.AuxData[off+2]
		return ID(v), v != NoIndex
	case Ref:
		v := c.t.AuxData[off+1]
		return ID(v), v != NoIndex
	case OneOf:
		v := c.t.AuxData[off]
		return ID(v), v != NoIndex
	default:
		return 0, false
	}
}

// RefName returns the interned rule name a Ref targets.
func (c *Context) RefName(id ID) string {
	return c.t.Strings[c.t.Insts[id].FirstChildIdx]
}

// RefExplicitTarget returns the grammar id a Ref points at directly,
// bypassing name resolution, when the dialect table wired one in. Ref's
// FirstChildIdx already holds the rule name's Strings index (see RefName),
// so the explicit target lives in its own aux slot rather than reusing
// Children/ChildIDs, which would otherwise alias the same field two ways.
func (c *Context) RefExplicitTarget(id ID) (ID, bool) {
	in := c.t.Insts[id]
	if !in.Flags.Has(HasExplicitTarget) {
		return 0, false
	}
	off := c.auxOffset(id)
	return ID(c.t.AuxData[off]), true
}

// SegmentType returns the declared downstream "kind" for a Ref'd rule, if
// the dialect table recorded one.
func (c *Context) SegmentType(id ID) (string, bool) {
	name, ok := c.t.SegmentTypes[id]
	return name, ok
}

// Template returns the literal text a StringParser/TypedParser matches
// against (for TypedParser, this is the token-type tag to compare).
func (c *Context) Template(id ID) string {
	return c.t.Strings[c.t.Insts[id].FirstChildIdx]
}

// Templates returns the set of literal alternatives a MultiStringParser
// matches against.
func (c *Context) Templates(id ID) []string {
	in := c.t.Insts[id]
	start := in.FirstChildIdx
	out := make([]string, in.ChildCount)
	for i := range out {
		out[i] = c.t.Strings[c.t.AuxData[start+uint32(i)]]
	}
	return out
}

// ProducedTokenType returns the token.Type a terminal matcher stamps onto
// the Token CST leaf it produces.
func (c *Context) ProducedTokenType(id ID) token.Type {
	in := c.t.Insts[id]
	off := c.auxOffset(id)
	switch in.Variant {
	case StringParser, TypedParser:
		return token.Type(c.t.Strings[c.t.AuxData[off]])
	case MultiStringParser:
		return token.Type(c.t.Strings[c.t.AuxData[off]])
	case RegexParser:
		return token.Type(c.t.Strings[c.t.AuxData[off+1]])
	case Token:
		return token.Type(c.t.Strings[in.FirstChildIdx])
	default:
		return ""
	}
}

// MetaTag returns the meta-kind name (e.g. "dedent") a Meta instruction
// carries.
func (c *Context) MetaTag(id ID) string {
	return c.t.Strings[c.t.Insts[id].FirstChildIdx]
}

// RegexPattern returns the compiled pattern a RegexParser matches against.
func (c *Context) RegexPattern(id ID) *regexp.Regexp {
	return c.t.RegexPatterns[c.t.Insts[id].FirstChildIdx]
}

// AntiPattern returns the anti-template pattern for a RegexParser, if one
// is declared (spec §4.3: "if HAS_ANTI_TEMPLATE also matches, the overall
// match fails").
func (c *Context) AntiPattern(id ID) (*regexp.Regexp, bool) {
	in := c.t.Insts[id]
	if !in.Flags.Has(HasAntiTemplate) {
		return nil, false
	}
	off := c.auxOffset(id)
	idx := c.t.AuxData[off]
	if idx == NoIndex {
		return nil, false
	}
	return c.t.RegexPatterns[idx], true
}

// DelimitedConfig returns the index, within Children(id), of the delimiter
// grammar, plus the minimum number of delimiters required.
func (c *Context) DelimitedConfig(id ID) (delimiterChildIdx int, minDelimiters int) {
	off := c.auxOffset(id)
	return int(c.t.AuxData[off]), int(c.t.Insts[id].MinTimes)
}

// BracketedConfig returns the indices, within Children(id), of the start
// and end bracket grammars. The remaining children are the content
// grammar(s).
func (c *Context) BracketedConfig(id ID) (startChildIdx, endChildIdx int) {
	off := c.auxOffset(id)
	return int(c.t.AuxData[off]), int(c.t.AuxData[off+1])
}

// AnyNumberOfConfig returns the repetition configuration for an
// AnyNumberOf/AnySetOf instruction: the minimum (from Inst.MinTimes), the
// maximum repetitions (nil if unbounded), and the maximum matches per
// distinct element (nil if unbounded).
func (c *Context) AnyNumberOfConfig(id ID) (min int, max *int, maxPerElement *int) {
	in := c.t.Insts[id]
	off := c.auxOffset(id)
	min = int(in.MinTimes)
	if v := c.t.AuxData[off]; v != Unbounded {
		n := int(v)
		max = &n
	}
	if v := c.t.AuxData[off+1]; v != Unbounded {
		n := int(v)
		maxPerElement = &n
	}
	return min, max, maxPerElement
}

// String renders a short human-readable description of a grammar id, used
// in diagnostics and debug tooling.
func (c *Context) String(id ID) string {
	if id == NonCode {
		return "NONCODE"
	}
	in := c.t.Insts[id]
	switch in.Variant {
	case Ref:
		return fmt.Sprintf("Ref(%s)", c.RefName(id))
	case StringParser, TypedParser:
		return fmt.Sprintf("%s(%q)", in.Variant, c.Template(id))
	case Token:
		return fmt.Sprintf("Token(%s)", c.ProducedTokenType(id))
	default:
		return in.Variant.String()
	}
}
