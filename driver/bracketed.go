package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/parseerr"
)

// initBracketed starts a Bracketed combinator (spec §4.8): match the open
// bracket, resolve its partner via the token's precomputed bracket-match
// index, parse the middle children as an implicit Sequence bounded by that
// partner, then require the close bracket grammar to match exactly there.
func initBracketed(p *Parser, f *Frame) {
	children := p.Ctx.Children(f.grammarID)
	startIdx, endIdx := p.Ctx.BracketedConfig(f.grammarID)
	startChild := children[startIdx]
	endChild := children[endIdx]
	content := make([]grammar.ID, 0, len(children)-2)
	for i, c := range children {
		if i != startIdx && i != endIdx {
			content = append(content, c)
		}
	}

	pos := f.pos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}

	f.brk = &bracketCtx{
		stage:        bracketMatchingOpen,
		startChildID: startChild,
		endChildID:   endChild,
		content:      content,
		openPos:      pos,
		pendingGap:   gap,
	}

	if f.hasParentMaxIdx {
		p.pushChildBounded(f, startChild, pos, f.parentMaxIdx)
	} else {
		p.pushChild(f, startChild, pos)
	}
}

func combineBracketed(p *Parser, f *Frame, child frameResult) error {
	ctx := f.brk
	switch ctx.stage {
	case bracketMatchingOpen:
		if child.node.IsEmpty() {
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			completeFrame(p, f, cst.Empty, f.pos)
			return nil
		}
		tok := p.Tokens.At(ctx.openPos)
		if tok.MatchingBracketIdx == nil {
			return missingBracketPartner(p, ctx.openPos)
		}
		ctx.closeIdx = *tok.MatchingBracketIdx
		ctx.hasClose = true
		ctx.contentMax = ctx.closeIdx

		if len(ctx.pendingGap) > 0 {
			ctx.accumulated = append(ctx.accumulated, ctx.pendingGap...)
		}
		ctx.accumulated = append(ctx.accumulated, child.node)
		ctx.pendingGap = nil
		ctx.stage = bracketMatchingContent
		advanceBracketedContent(p, f, child.endPos)

	case bracketMatchingContent:
		elemID := ctx.content[ctx.contentElemIdx]
		if child.node.IsEmpty() {
			if !p.Ctx.Inst(elemID).IsOptional() {
				p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
				completeFrame(p, f, cst.Empty, f.pos)
				return nil
			}
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			ctx.pendingGap = nil
			ctx.contentElemIdx++
			advanceBracketedContent(p, f, lastContentPos(ctx))
			return nil
		}
		if len(ctx.pendingGap) > 0 {
			ctx.accumulated = append(ctx.accumulated, ctx.pendingGap...)
		}
		ctx.accumulated = append(ctx.accumulated, child.node)
		ctx.pendingGap = nil
		ctx.contentElemIdx++
		advanceBracketedContent(p, f, child.endPos)

	case bracketMatchingClose:
		if child.node.IsEmpty() {
			// The content didn't consume exactly up to the lexer-resolved
			// partner, or the close grammar disagrees with it — an
			// ordinary local mismatch, not a token-stream invariant
			// violation, so this is recoverable by backtracking.
			p.checkpoints.Unmark(gapPositions(ctx.pendingGap))
			completeFrame(p, f, cst.Empty, f.pos)
			return nil
		}
		if len(ctx.pendingGap) > 0 {
			ctx.accumulated = append(ctx.accumulated, ctx.pendingGap...)
		}
		ctx.accumulated = append(ctx.accumulated, child.node)
		node := cst.NewBracketed(ctx.accumulated)
		p.storeCache(f, node, child.endPos)
		completeFrame(p, f, node, child.endPos)
	}
	return nil
}

// lastContentPos tracks where to resume scanning content from after an
// optional element was skipped; it's just the position the skipped
// element's trial started from, since nothing was consumed.
func lastContentPos(ctx *bracketCtx) int {
	return ctx.resumePos
}

func advanceBracketedContent(p *Parser, f *Frame, fromPos int) {
	ctx := f.brk
	if ctx.contentElemIdx >= len(ctx.content) {
		startBracketedClose(p, f, fromPos)
		return
	}
	elemID := ctx.content[ctx.contentElemIdx]
	pos := fromPos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	ctx.pendingGap = gap
	ctx.resumePos = fromPos
	p.pushChildBounded(f, elemID, pos, ctx.contentMax)
}

func startBracketedClose(p *Parser, f *Frame, fromPos int) {
	ctx := f.brk
	ctx.stage = bracketMatchingClose
	pos := fromPos
	var gap []cst.Node
	if p.Ctx.Inst(f.grammarID).Flags.Has(grammar.AllowGaps) {
		gap, pos = collectLeadingTransparent(p, pos)
	}
	ctx.pendingGap = gap
	if pos != ctx.closeIdx {
		p.checkpoints.Unmark(gapPositions(gap))
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	p.pushChildBounded(f, ctx.endChildID, pos, pos+1)
}

func missingBracketPartner(p *Parser, pos int) error {
	return parseerr.MissingBracketPartner(&pos, p.ID)
}
