package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// initAnyNumberOf starts an AnyNumberOf (spec §4.6) or AnySetOf (spec
// §4.10) combinator: both repeatedly try to match one more of a set of
// elements at the current position until nothing more matches, a
// repetition cap is hit, or (AnySetOf only) every distinct element has
// already matched once.
func initAnyNumberOf(p *Parser, f *Frame, isSetOf bool) {
	elements := p.Ctx.ElementChildren(f.grammarID)
	min, max, maxPerElem := p.Ctx.AnyNumberOfConfig(f.grammarID)
	f.any = &anyNumCtx{
		elements:      elements,
		min:           min,
		max:           max,
		maxPerElement: maxPerElem,
		isSetOf:       isSetOf,
		workingPos:    f.pos,
		perElemCount:  make(map[grammar.ID]int),
		matchedSet:    make(map[grammar.ID]bool),
	}
	startAnyNumberOfRound(p, f)
}

// startAnyNumberOfRound begins one more repetition attempt: a OneOf-style
// best-match trial over whichever elements are still eligible this round.
func startAnyNumberOfRound(p *Parser, f *Frame) {
	ctx := f.any

	if ctx.max != nil && ctx.repCount >= *ctx.max {
		finalizeAnyNumberOf(p, f)
		return
	}

	roundCands := make([]grammar.ID, 0, len(ctx.elements))
	for _, e := range ctx.elements {
		if ctx.isSetOf && ctx.matchedSet[e] {
			continue
		}
		if ctx.maxPerElement != nil && ctx.perElemCount[e] >= *ctx.maxPerElement {
			continue
		}
		roundCands = append(roundCands, e)
	}
	if len(roundCands) == 0 {
		finalizeAnyNumberOf(p, f)
		return
	}

	pos := ctx.workingPos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	ctx.pendingGap = gap

	if pos < p.Tokens.Len() {
		tok := p.Tokens.At(pos)
		roundCands = pruneByHint(p, roundCands, tok)
	}
	if len(roundCands) == 0 {
		p.checkpoints.Unmark(gapPositions(gap))
		finalizeAnyNumberOf(p, f)
		return
	}

	ctx.trialPos = pos
	ctx.roundCandidates = roundCands
	ctx.roundCandidateIdx = 0
	ctx.bestFound = false
	tryNextAnyNumberOfCandidate(p, f)
}

func tryNextAnyNumberOfCandidate(p *Parser, f *Frame) {
	ctx := f.any
	if ctx.roundCandidateIdx >= len(ctx.roundCandidates) {
		if !ctx.bestFound {
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			finalizeAnyNumberOf(p, f)
			return
		}
		if len(ctx.pendingGap) > 0 {
			ctx.accumulated = append(ctx.accumulated, ctx.pendingGap...)
		}
		ctx.accumulated = append(ctx.accumulated, ctx.bestNode)
		ctx.perElemCount[ctx.bestElemID]++
		if ctx.isSetOf {
			ctx.matchedSet[ctx.bestElemID] = true
		}
		ctx.repCount++
		ctx.workingPos = ctx.bestEnd
		ctx.pendingGap = nil
		startAnyNumberOfRound(p, f)
		return
	}
	cand := ctx.roundCandidates[ctx.roundCandidateIdx]
	if f.hasParentMaxIdx {
		p.pushChildBounded(f, cand, ctx.trialPos, f.parentMaxIdx)
	} else {
		p.pushChild(f, cand, ctx.trialPos)
	}
}

func combineAnyNumberOf(p *Parser, f *Frame, child frameResult) error {
	ctx := f.any
	cand := ctx.roundCandidates[ctx.roundCandidateIdx]
	if !child.node.IsEmpty() {
		if !ctx.bestFound || child.endPos > ctx.bestEnd {
			ctx.bestNode = child.node
			ctx.bestEnd = child.endPos
			ctx.bestElemID = cand
			ctx.bestFound = true
		}
	}
	ctx.roundCandidateIdx++
	tryNextAnyNumberOfCandidate(p, f)
	return nil
}

func finalizeAnyNumberOf(p *Parser, f *Frame) {
	ctx := f.any
	if ctx.repCount < ctx.min {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewSequence(ctx.accumulated)
	p.storeCache(f, node, ctx.workingPos)
	completeFrame(p, f, node, ctx.workingPos)
}
