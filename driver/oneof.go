package driver

import (
	"github.com/parsekit/gramsql/cst"
)

// initOneOf starts a OneOf combinator (spec §4.5). Every candidate whose
// simple hint (spec §4.13) rules out the current token is skipped without
// a tentative parse; the rest are tried in declaration order and the
// longest resulting match wins, mirroring SQLFluff's one_of "best match"
// semantics rather than "first match".
func initOneOf(p *Parser, f *Frame) {
	all := p.Ctx.ElementChildren(f.grammarID)
	candidates := all
	if f.pos < p.Tokens.Len() {
		tok := p.Tokens.At(f.pos)
		candidates = pruneByHint(p, all, tok)
	}
	f.one = &oneOfCtx{candidates: candidates}
	tryNextOneOfCandidate(p, f)
}

func tryNextOneOfCandidate(p *Parser, f *Frame) {
	if f.one.candidateIdx >= len(f.one.candidates) {
		finishOneOf(p, f)
		return
	}
	cand := f.one.candidates[f.one.candidateIdx]
	if f.hasParentMaxIdx {
		p.pushChildBounded(f, cand, f.pos, f.parentMaxIdx)
	} else {
		p.pushChild(f, cand, f.pos)
	}
}

func combineOneOf(p *Parser, f *Frame, child frameResult) error {
	if !child.node.IsEmpty() {
		if !f.one.bestFound || child.endPos > f.one.bestEnd {
			f.one.bestNode = child.node
			f.one.bestEnd = child.endPos
			f.one.bestFound = true
		}
	}
	f.one.candidateIdx++
	tryNextOneOfCandidate(p, f)
	return nil
}

func finishOneOf(p *Parser, f *Frame) {
	if !f.one.bestFound {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	p.storeCache(f, f.one.bestNode, f.one.bestEnd)
	completeFrame(p, f, f.one.bestNode, f.one.bestEnd)
}
