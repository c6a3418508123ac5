package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// greedyAbsorb implements parse-mode finalization for a Sequence that hit a
// required element it couldn't match (spec §4.12): under Strict the whole
// sequence simply fails, but under Greedy — or GreedyOnceStarted once at
// least one earlier element has already matched — the remaining tokens up
// to the active boundary are wrapped as a single Unparsable node instead of
// discarding the match entirely. It reports ok=false when the frame isn't
// in a greedy mode, or when there is nothing left to absorb.
func greedyAbsorb(p *Parser, f *Frame) (cst.Node, int, bool) {
	if f.parseMode == grammar.Strict {
		return cst.Empty, 0, false
	}
	if f.parseMode == grammar.GreedyOnceStarted && f.seq.elemIdx == 0 {
		return cst.Empty, 0, false
	}

	limit := p.Tokens.Len()
	if f.seq.hasMaxIdx && f.seq.maxIdx < limit {
		limit = f.seq.maxIdx
	}
	trimmed := lastCodeIndexBefore(p, limit, f.pos)
	if trimmed < f.pos {
		return cst.Empty, 0, false
	}
	end := trimmed + 1

	children := make([]cst.Node, 0, end-f.pos)
	for i := f.pos; i < end; i++ {
		tok := p.Tokens.At(i)
		if tok.IsCode {
			children = append(children, cst.NewToken(tok.TokenType, tok.Raw, i))
		} else {
			children = append(children, cst.NewTransparent(tok, i))
		}
	}

	elements := p.Ctx.Children(f.grammarID)
	expected := "element"
	if f.seq.elemIdx < len(elements) {
		expected = p.Ctx.String(elements[f.seq.elemIdx])
	}
	return cst.NewUnparsable(expected, children), end, true
}
