package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// initDelimited starts a Delimited combinator (spec §4.7): element
// delimiter element delimiter ... , stopping as soon as either side fails
// to match. A delimiter that matched but whose following element did not
// is included in the result only if AllowTrailing is set; otherwise the
// list ends at the last element that actually matched.
func initDelimited(p *Parser, f *Frame) {
	children := p.Ctx.Children(f.grammarID)
	delimIdx, minDelims := p.Ctx.DelimitedConfig(f.grammarID)
	delimiter := children[delimIdx]
	elements := make([]grammar.ID, 0, len(children)-1)
	for i, c := range children {
		if i != delimIdx {
			elements = append(elements, c)
		}
	}
	inst := p.Ctx.Inst(f.grammarID)
	f.del = &delimCtx{
		stage:             delimMatchingElement,
		elements:          elements,
		delimiter:         delimiter,
		minDelimiters:     minDelims,
		allowTrailing:     inst.Flags.Has(grammar.AllowTrailing),
		optionalDelimiter: inst.Flags.Has(grammar.OptionalDelimiter),
		workingPos:        f.pos,
		lastGoodEnd:       f.pos,
	}
	startDelimitedElement(p, f)
}

func startDelimitedElement(p *Parser, f *Frame) {
	ctx := f.del
	ctx.stage = delimMatchingElement

	pos := ctx.workingPos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	ctx.pendingGap = gap

	cands := ctx.elements
	if pos < p.Tokens.Len() {
		tok := p.Tokens.At(pos)
		cands = pruneByHint(p, cands, tok)
	}
	if len(cands) == 0 {
		p.checkpoints.Unmark(gapPositions(gap))
		finishDelimitedNoMoreElements(p, f)
		return
	}

	ctx.trialPos = pos
	ctx.roundCandidates = cands
	ctx.roundCandidateIdx = 0
	ctx.bestFound = false
	tryNextDelimitedCandidate(p, f)
}

func tryNextDelimitedCandidate(p *Parser, f *Frame) {
	ctx := f.del
	if ctx.roundCandidateIdx >= len(ctx.roundCandidates) {
		if !ctx.bestFound {
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			finishDelimitedNoMoreElements(p, f)
			return
		}
		if ctx.delimPending {
			if len(ctx.delimPendingGap) > 0 {
				ctx.accumulated = append(ctx.accumulated, ctx.delimPendingGap...)
			}
			ctx.accumulated = append(ctx.accumulated, ctx.delimPendingNode)
		}
		if len(ctx.pendingGap) > 0 {
			ctx.accumulated = append(ctx.accumulated, ctx.pendingGap...)
		}
		ctx.accumulated = append(ctx.accumulated, ctx.bestNode)
		ctx.workingPos = ctx.bestEnd
		ctx.pendingGap = nil
		ctx.hasMatchedOnce = true
		ctx.lastGoodEnd = ctx.workingPos
		ctx.lastGoodAccum = append([]cst.Node{}, ctx.accumulated...)
		ctx.delimPending = false
		startDelimitedDelimiter(p, f)
		return
	}
	cand := ctx.roundCandidates[ctx.roundCandidateIdx]
	if f.hasParentMaxIdx {
		p.pushChildBounded(f, cand, ctx.trialPos, f.parentMaxIdx)
	} else {
		p.pushChild(f, cand, ctx.trialPos)
	}
}

func startDelimitedDelimiter(p *Parser, f *Frame) {
	ctx := f.del
	ctx.stage = delimMatchingDelimiter

	pos := ctx.workingPos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	ctx.pendingGap = gap
	ctx.trialPos = pos

	if f.hasParentMaxIdx {
		p.pushChildBounded(f, ctx.delimiter, pos, f.parentMaxIdx)
	} else {
		p.pushChild(f, ctx.delimiter, pos)
	}
}

func combineDelimited(p *Parser, f *Frame, child frameResult) error {
	ctx := f.del
	switch ctx.stage {
	case delimMatchingElement:
		cand := ctx.roundCandidates[ctx.roundCandidateIdx]
		if !child.node.IsEmpty() {
			if !ctx.bestFound || child.endPos > ctx.bestEnd {
				ctx.bestNode = child.node
				ctx.bestEnd = child.endPos
				ctx.bestFound = true
			}
		}
		_ = cand
		ctx.roundCandidateIdx++
		tryNextDelimitedCandidate(p, f)

	case delimMatchingDelimiter:
		if child.node.IsEmpty() {
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			finishDelimitedFinal(p, f, ctx.lastGoodAccum, ctx.lastGoodEnd)
			return nil
		}
		ctx.delimPending = true
		ctx.delimPendingGap = ctx.pendingGap
		ctx.delimPendingNode = child.node
		ctx.delimPendingEnd = child.endPos
		ctx.pendingGap = nil
		ctx.workingPos = child.endPos
		ctx.delimiterCount++
		startDelimitedElement(p, f)
	}
	return nil
}

// finishDelimitedNoMoreElements is reached once an attempted element fails
// to match. If a delimiter was tentatively matched just before this
// attempt, AllowTrailing decides whether it belongs in the final result.
func finishDelimitedNoMoreElements(p *Parser, f *Frame) {
	ctx := f.del
	if ctx.delimPending {
		if ctx.allowTrailing {
			accum := ctx.accumulated
			if len(ctx.delimPendingGap) > 0 {
				accum = append(accum, ctx.delimPendingGap...)
			}
			accum = append(accum, ctx.delimPendingNode)
			finishDelimitedFinal(p, f, accum, ctx.delimPendingEnd)
			return
		}
		p.checkpoints.Unmark(gapPositions(ctx.delimPendingGap))
		ctx.delimiterCount--
		finishDelimitedFinal(p, f, ctx.lastGoodAccum, ctx.lastGoodEnd)
		return
	}
	finishDelimitedFinal(p, f, ctx.lastGoodAccum, ctx.lastGoodEnd)
}

func finishDelimitedFinal(p *Parser, f *Frame, accum []cst.Node, endPos int) {
	ctx := f.del
	if !ctx.hasMatchedOnce || ctx.delimiterCount < ctx.minDelimiters {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewDelimitedList(accum)
	p.storeCache(f, node, endPos)
	completeFrame(p, f, node, endPos)
}
