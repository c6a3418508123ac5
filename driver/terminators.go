package driver

import (
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/token"
)

// combineTerminators merges a parent's active terminator set with a
// child's own table_terminators, honoring ResetTerminators (spec §4.11):
// when set, the child discards the inherited terminators entirely instead
// of adding to them. Ref is the only variant allowed to carry
// ResetTerminators in practice, but the merge itself is variant-agnostic.
func combineTerminators(ctx *grammar.Context, id grammar.ID, inherited []grammar.ID) []grammar.ID {
	own := ctx.Terminators(id)
	inst := ctx.Inst(id)
	if inst.Flags.Has(grammar.ResetTerminators) || len(inherited) == 0 {
		return own
	}
	if len(own) == 0 {
		return inherited
	}
	merged := make([]grammar.ID, 0, len(own)+len(inherited))
	merged = append(merged, own...)
	merged = append(merged, inherited...)
	return merged
}

// computeMaxIdx scans forward from pos for the first token matching one of
// terminators and returns one past the last code token before it as the
// new upper bound, never less than pos (spec §4.11).
// The scan skips over bracketed regions wholesale — a terminator token
// that happens to live inside a nested bracket pair does not count, since
// the bracket contents are parsed as an atomic unit by whichever frame
// eventually reaches them. If nothing terminates the scan before
// parentMaxIdx (or end of input when there is no parent bound), that bound
// passes through unchanged.
func computeMaxIdx(p *Parser, pos int, terminators []grammar.ID, hasParentMaxIdx bool, parentMaxIdx int) (int, bool) {
	if len(terminators) == 0 {
		return parentMaxIdx, hasParentMaxIdx
	}
	limit := p.Tokens.Len()
	if hasParentMaxIdx && parentMaxIdx < limit {
		limit = parentMaxIdx
	}
	i := pos
	for i < limit {
		tok := p.Tokens.At(i)
		if tok.IsOpenBracket() {
			j := matchingCloseIndex(p, i)
			if j < 0 || j >= limit {
				break
			}
			i = j + 1
			continue
		}
		if tok.IsCode && matchesAnyTerminator(p, i, terminators) {
			end := p.Tokens.LastCodeIndexBefore(i) + 1
			if end < pos {
				end = pos
			}
			return end, true
		}
		i++
	}
	return parentMaxIdx, hasParentMaxIdx
}

// matchesAnyTerminator reports whether the token at idx would be matched
// by starting any of the terminator grammars at that position. Terminator
// grammars are themselves ordinary grammar ids (typically StringParser or
// TypedParser leaves), so this runs the same terminal-matching logic the
// engine uses elsewhere, without pushing a frame for it.
func matchesAnyTerminator(p *Parser, idx int, terminators []grammar.ID) bool {
	for _, t := range terminators {
		if matchTerminalAt(p, t, idx) {
			return true
		}
	}
	return false
}

// matchingCloseIndex returns the token index of the bracket that closes
// the open bracket at idx, using the pre-computed bracket partner map
// carried on the token itself (spec §4.1: "every bracket token already
// knows its partner's index before the engine starts").
func matchingCloseIndex(p *Parser, idx int) int {
	tok := p.Tokens.At(idx)
	if tok.MatchingBracketIdx == nil {
		return -1
	}
	return *tok.MatchingBracketIdx
}

// lastCodeIndexBefore implements the "trim trailing non-code back to the
// last code token" rule used when finalizing a greedy match (spec §4.12):
// a greedy span should never claim trailing whitespace or comments that
// weren't actually required to make the match.
func lastCodeIndexBefore(p *Parser, endExclusive int, from int) int {
	return p.Tokens.LastCodeIndexBefore(endExclusive)
}

// hintAllows reports whether id's simple-hint set (if it has one) permits
// the token at pos to be its first consumed token (spec §4.13). Grammars
// without a hint always return true: the absence of a hint means no
// pruning information is available, not that nothing can match.
func hintAllows(ctx *grammar.Context, id grammar.ID, tok token.Token) bool {
	hint := ctx.Hint(id)
	if hint == nil {
		return true
	}
	raw := upper(tok.Raw)
	return hint.Matches(raw, string(tok.TokenType))
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
