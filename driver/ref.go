package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/parseerr"
)

// initRef starts a Ref combinator (spec §4.9): resolve the named target
// (or the explicit target the dialect table wired in directly), check any
// declared exclude grammar first, then expand the target and wrap its
// result in a named node.
func initRef(p *Parser, f *Frame) error {
	name := p.Ctx.RefName(f.grammarID)
	segType, _ := p.Ctx.SegmentType(f.grammarID)

	var target grammar.ID
	if explicit, ok := p.Ctx.RefExplicitTarget(f.grammarID); ok {
		target = explicit
	} else {
		id, ok := p.Ctx.Tables().Lookup(name)
		if !ok {
			pos := f.pos
			return parseerr.UnknownSegment(name, &pos, p.ID)
		}
		target = id
	}

	f.ref = &refCtx{name: name, segmentType: segType, target: target}
	if excludeID, ok := p.Ctx.Exclude(f.grammarID); ok {
		f.ref.hasExclude = true
		f.ref.excludeID = excludeID
		f.ref.checkingExclude = true
		if f.hasParentMaxIdx {
			p.pushChildBounded(f, excludeID, f.pos, f.parentMaxIdx)
		} else {
			p.pushChild(f, excludeID, f.pos)
		}
		return nil
	}

	if f.hasParentMaxIdx {
		p.pushChildBounded(f, target, f.pos, f.parentMaxIdx)
	} else {
		p.pushChild(f, target, f.pos)
	}
	return nil
}

func combineRef(p *Parser, f *Frame, child frameResult) error {
	ctx := f.ref
	if ctx.checkingExclude {
		ctx.checkingExclude = false
		if !child.node.IsEmpty() {
			completeFrame(p, f, cst.Empty, f.pos)
			return nil
		}
		if f.hasParentMaxIdx {
			p.pushChildBounded(f, ctx.target, f.pos, f.parentMaxIdx)
		} else {
			p.pushChild(f, ctx.target, f.pos)
		}
		return nil
	}

	if child.node.IsEmpty() {
		completeFrame(p, f, cst.Empty, f.pos)
		return nil
	}
	node := cst.NewRef(ctx.name, ctx.segmentType, child.node).Deduplicate()
	p.storeCache(f, node, child.endPos)
	completeFrame(p, f, node, child.endPos)
	return nil
}
