package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
)

// newFrame allocates a frame for grammarID starting at pos, inheriting the
// parent's terminator set and max_idx per combineTerminators /
// computeMaxIdx (spec §4.11). It does not push the frame onto the stack;
// callers do that explicitly so the push order is visible at each call
// site.
func (p *Parser) newFrame(grammarID grammar.ID, pos int, inheritedTerm []grammar.ID, hasParentMaxIdx bool, parentMaxIdx int) *Frame {
	p.frameSeq++
	terms := combineTerminators(p.Ctx, grammarID, inheritedTerm)
	maxIdx, hasMax := computeMaxIdx(p, pos, terms, hasParentMaxIdx, parentMaxIdx)
	return &Frame{
		id:              p.frameSeq,
		grammarID:       grammarID,
		pos:             pos,
		hasParentMaxIdx: hasMax,
		parentMaxIdx:    maxIdx,
		terminators:     terms,
		parseMode:       p.Ctx.Inst(grammarID).ParseMode,
		state:           StateInitial,
	}
}

// pushChild starts a child frame for grammarID on behalf of parent and
// suspends parent in WaitingForChild until it completes.
func (p *Parser) pushChild(parent *Frame, grammarID grammar.ID, pos int) *Frame {
	child := p.newFrame(grammarID, pos, parent.terminators, parent.hasParentMaxIdx, parent.parentMaxIdx)
	parent.waitChildID = child.id
	parent.state = StateWaitingForChild
	p.stack = append(p.stack, child)
	return child
}

// pushChildBounded is pushChild but with an explicit max_idx override,
// used by Bracketed to bound its content by the resolved closing bracket
// and by Delimited/AnyNumberOf when trialing a candidate element.
func (p *Parser) pushChildBounded(parent *Frame, grammarID grammar.ID, pos int, maxIdx int) *Frame {
	child := p.newFrame(grammarID, pos, parent.terminators, true, maxIdx)
	parent.waitChildID = child.id
	parent.state = StateWaitingForChild
	p.stack = append(p.stack, child)
	return child
}

// completeFrame finalizes f with the given result and resolves its
// checkpoint: committed if it actually matched something, rolled back if
// it produced an empty result, so claimed transparent positions become
// available to sibling attempts (spec §4.15).
func completeFrame(p *Parser, f *Frame, node cst.Node, endPos int) {
	f.state = StateComplete
	f.resultNode = node
	f.endPos = endPos
	if node.IsEmpty() {
		p.checkpoints.Rollback(f.id)
	} else {
		p.checkpoints.Commit(f.id)
	}
}

// collectLeadingTransparent consumes every transparent token starting at
// pos that hasn't already been claimed by a still-open ancestor frame,
// recording each claim against the checkpoint currently on top of the log
// (spec §4.15). It stops at the first code token, the first already-claimed
// position, or end of input.
func collectLeadingTransparent(p *Parser, pos int) ([]cst.Node, int) {
	var out []cst.Node
	i := pos
	for i < p.Tokens.Len() {
		tok := p.Tokens.At(i)
		if tok.IsCode {
			break
		}
		if !p.checkpoints.Mark(i) {
			break
		}
		out = append(out, cst.NewTransparent(tok, i))
		i++
	}
	return out, i
}

// gapPositions extracts the token indices of a collected transparent gap,
// for handing to checkpointLog.Unmark when the gap turns out to be unused.
func gapPositions(gap []cst.Node) []int {
	if len(gap) == 0 {
		return nil
	}
	out := make([]int, len(gap))
	for i, n := range gap {
		out[i] = n.TokenIdx
	}
	return out
}

// run drives the iterative dispatch loop (spec §4.2) until the root frame
// completes, returning its result. Child expansion never recurses through
// the Go call stack: every nested grammar reference becomes a new Frame
// appended to p.stack.
func (p *Parser) run(root *Frame) (cst.Node, int, error) {
	p.stack = []*Frame{root}
	p.results = make(map[uint64]frameResult)

	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]

		switch top.state {
		case StateComplete:
			p.stack = p.stack[:len(p.stack)-1]
			p.results[top.id] = frameResult{node: top.resultNode, endPos: top.endPos}
			p.trace("complete frame=%d grammar=%d pos=%d end=%d empty=%v", top.id, top.grammarID, top.pos, top.endPos, top.resultNode.IsEmpty())

		case StateInitial:
			p.trace("dispatch frame=%d grammar=%d pos=%d", top.id, top.grammarID, top.pos)
			if !top.checkpointed {
				p.checkpoints.Push(top.id)
				top.checkpointed = true
			}
			if err := p.dispatchInitial(top); err != nil {
				return cst.Empty, 0, err
			}

		case StateWaitingForChild:
			child, ok := p.results[top.waitChildID]
			if !ok {
				return cst.Empty, 0, malformed(p, "frame waiting on unresolved child", top.pos)
			}
			p.trace("resume frame=%d grammar=%d child=%d", top.id, top.grammarID, top.waitChildID)
			if err := p.dispatchCombining(top, child); err != nil {
				return cst.Empty, 0, err
			}

		case StateCombining:
			return cst.Empty, 0, malformed(p, "unreachable combining state", top.pos)
		}
	}

	res := p.results[root.id]
	return res.node, res.endPos, nil
}

type frameResult struct {
	node   cst.Node
	endPos int
}

// dispatchInitial runs a frame's first step: terminal matchers resolve
// immediately, composite combinators look at the cache, apply simple-hint
// pruning, and either complete empty (pruned out / no candidates) or push
// their first child.
func (p *Parser) dispatchInitial(f *Frame) error {
	v := p.Ctx.Variant(f.grammarID)

	if isTerminalVariant(v) {
		return dispatchTerminal(p, f)
	}

	if key, ok := p.cacheKeyFor(f); ok {
		if hit, found := p.cache.get(key); found {
			p.pruneStats.cacheHits++
			completeFrame(p, f, hit.node, hit.endPos)
			return nil
		}
	}

	switch v {
	case grammar.Sequence:
		initSequence(p, f)
	case grammar.OneOf:
		initOneOf(p, f)
	case grammar.AnyNumberOf:
		initAnyNumberOf(p, f, false)
	case grammar.AnySetOf:
		initAnyNumberOf(p, f, true)
	case grammar.Delimited:
		initDelimited(p, f)
	case grammar.Bracketed:
		initBracketed(p, f)
	case grammar.Ref:
		if err := initRef(p, f); err != nil {
			return err
		}
	default:
		return malformed(p, "unknown grammar variant for id "+p.Ctx.String(f.grammarID), f.pos)
	}
	return nil
}

// dispatchCombining feeds a completed child's result to its parent, which
// is sitting in WaitingForChild.
func (p *Parser) dispatchCombining(f *Frame, child frameResult) error {
	switch p.Ctx.Variant(f.grammarID) {
	case grammar.Sequence:
		return combineSequence(p, f, child)
	case grammar.OneOf:
		return combineOneOf(p, f, child)
	case grammar.AnyNumberOf, grammar.AnySetOf:
		return combineAnyNumberOf(p, f, child)
	case grammar.Delimited:
		return combineDelimited(p, f, child)
	case grammar.Bracketed:
		return combineBracketed(p, f, child)
	case grammar.Ref:
		return combineRef(p, f, child)
	default:
		return malformed(p, "combining into non-composite grammar", f.pos)
	}
}

func (p *Parser) cacheKeyFor(f *Frame) (cacheKey, bool) {
	if !p.cache.enabled {
		return cacheKey{}, false
	}
	return cacheKey{
		grammarID:    f.grammarID,
		pos:          f.pos,
		termFP:       fingerprintTerminators(f.terminators),
		maxIdx:       f.parentMaxIdx,
		hasMaxIdx:    f.hasParentMaxIdx,
		modeOverride: int8(f.parseMode),
	}, true
}

func (p *Parser) storeCache(f *Frame, node cst.Node, endPos int) {
	key, ok := p.cacheKeyFor(f)
	if !ok {
		return
	}
	p.cache.put(key, cacheValue{node: node, endPos: endPos})
}
