package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// initSequence starts a Sequence combinator (spec §4.4): children are tried
// strictly in order, each optionally preceded by a gap of transparent
// tokens when AllowGaps is set. A required child that fails to match fails
// the whole sequence; an optional one is skipped and its would-be gap is
// released back for the next attempt.
func initSequence(p *Parser, f *Frame) {
	elements := p.Ctx.Children(f.grammarID)
	f.seq = &seqCtx{
		maxIdx:    f.parentMaxIdx,
		hasMaxIdx: f.hasParentMaxIdx,
		elemIdx:   0,
	}
	if len(elements) == 0 {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	advanceSequence(p, f, elements)
}

// advanceSequence tries to start the next not-yet-matched element, or
// completes the frame once every element has been processed.
func advanceSequence(p *Parser, f *Frame, elements []grammar.ID) {
	if f.seq.elemIdx >= len(elements) {
		finishSequence(p, f)
		return
	}
	elemID := elements[f.seq.elemIdx]

	pos := f.pos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	f.seq.pendingGap = gap

	if f.seq.hasMaxIdx {
		p.pushChildBounded(f, elemID, pos, f.seq.maxIdx)
	} else {
		p.pushChild(f, elemID, pos)
	}
}

// combineSequence folds a just-completed element's result into the
// sequence's accumulated children and moves on to the next element.
func combineSequence(p *Parser, f *Frame, child frameResult) error {
	elements := p.Ctx.Children(f.grammarID)
	elemID := elements[f.seq.elemIdx]

	if child.node.IsEmpty() {
		if !p.Ctx.Inst(elemID).IsOptional() {
			if node, end, ok := greedyAbsorb(p, f); ok {
				p.checkpoints.Unmark(gapPositions(f.seq.pendingGap))
				f.seq.accumulated = append(f.seq.accumulated, node)
				merged := cst.NewSequence(f.seq.accumulated)
				p.storeCache(f, merged, end)
				completeFrame(p, f, merged, end)
				return nil
			}
			p.checkpoints.Unmark(gapPositions(f.seq.pendingGap))
			completeFrame(p, f, cst.Empty, f.pos)
			return nil
		}
		// Optional and unmatched: release the speculative gap and retry
		// from the same pre-gap position against the next element.
		p.checkpoints.Unmark(gapPositions(f.seq.pendingGap))
		f.seq.pendingGap = nil
		f.seq.elemIdx++
		advanceSequence(p, f, elements)
		return nil
	}

	if len(f.seq.pendingGap) > 0 {
		f.seq.accumulated = append(f.seq.accumulated, f.seq.pendingGap...)
	}
	f.seq.accumulated = append(f.seq.accumulated, child.node)
	f.seq.pendingGap = nil
	f.pos = child.endPos
	f.seq.elemIdx++
	advanceSequence(p, f, elements)
	return nil
}

func finishSequence(p *Parser, f *Frame) {
	node := cst.NewSequence(f.seq.accumulated)
	p.storeCache(f, node, f.pos)
	completeFrame(p, f, node, f.pos)
}
