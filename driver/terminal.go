package driver

import (
	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/token"
)

// isTerminalVariant reports whether id resolves in a single step: it never
// waits on a child frame, so dispatchInitial can complete it immediately
// (spec §4.3).
func isTerminalVariant(v grammar.Variant) bool {
	switch v {
	case grammar.StringParser, grammar.MultiStringParser, grammar.TypedParser,
		grammar.RegexParser, grammar.Token, grammar.Meta, grammar.NonCodeMatcher,
		grammar.Nothing, grammar.Anything, grammar.Empty, grammar.Missing:
		return true
	default:
		return false
	}
}

// dispatchTerminal runs one of the single-step matchers (spec §4.3) and
// completes f with the resulting node. Every path other than Missing
// completes locally; Missing is a defect in the dialect table, not a
// parse-time condition, so it aborts the whole parse (spec §7:
// "MalformedGrammar — the engine encountered a Missing variant").
func dispatchTerminal(p *Parser, f *Frame) error {
	v := p.Ctx.Variant(f.grammarID)
	switch v {
	case grammar.StringParser:
		p.matchString(f)
	case grammar.MultiStringParser:
		p.matchMultiString(f)
	case grammar.TypedParser:
		p.matchTyped(f)
	case grammar.RegexParser:
		p.matchRegex(f)
	case grammar.Token:
		p.matchToken(f)
	case grammar.Meta:
		p.matchMeta(f)
	case grammar.NonCodeMatcher:
		p.matchNonCode(f)
	case grammar.Nothing:
		completeFrame(p, f, cst.Empty, f.pos)
	case grammar.Empty:
		completeFrame(p, f, cst.Empty, f.pos)
	case grammar.Missing:
		return malformed(p, "encountered Missing grammar", f.pos)
	case grammar.Anything:
		p.matchAnything(f)
	default:
		completeFrame(p, f, cst.Empty, f.pos)
	}
	return nil
}

func (p *Parser) atEOF(pos int) bool {
	return pos >= p.Tokens.Len()
}

func (p *Parser) matchString(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	want := p.Ctx.Template(f.grammarID)
	if !tok.IsCode || upper(tok.Raw) != upper(want) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewToken(p.Ctx.ProducedTokenType(f.grammarID), tok.Raw, f.pos)
	completeFrame(p, f, node, f.pos+1)
}

func (p *Parser) matchMultiString(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	if !tok.IsCode {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	raw := upper(tok.Raw)
	for _, want := range p.Ctx.Templates(f.grammarID) {
		if raw == upper(want) {
			node := cst.NewToken(p.Ctx.ProducedTokenType(f.grammarID), tok.Raw, f.pos)
			completeFrame(p, f, node, f.pos+1)
			return
		}
	}
	completeFrame(p, f, cst.Empty, f.pos)
}

func (p *Parser) matchTyped(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	want := p.Ctx.ProducedTokenType(f.grammarID)
	if !tok.IsCode || tok.TokenType != want {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewToken(want, tok.Raw, f.pos)
	completeFrame(p, f, node, f.pos+1)
}

func (p *Parser) matchRegex(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	re := p.Ctx.RegexPattern(f.grammarID)
	if !tok.IsCode || re == nil || !re.MatchString(tok.Raw) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	if anti, ok := p.Ctx.AntiPattern(f.grammarID); ok && anti != nil && anti.MatchString(tok.Raw) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewToken(p.Ctx.ProducedTokenType(f.grammarID), tok.Raw, f.pos)
	completeFrame(p, f, node, f.pos+1)
}

func (p *Parser) matchToken(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	want := p.Ctx.Template(f.grammarID)
	if !tok.IsCode || tok.Raw != want {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	node := cst.NewToken(p.Ctx.ProducedTokenType(f.grammarID), tok.Raw, f.pos)
	completeFrame(p, f, node, f.pos+1)
}

func (p *Parser) matchMeta(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	if tok.TokenType != token.TypeMeta {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	want := p.Ctx.MetaTag(f.grammarID)
	if want != "" && tok.Raw != want {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	completeFrame(p, f, cst.NewTransparent(tok, f.pos), f.pos+1)
}

func (p *Parser) matchNonCode(f *Frame) {
	if p.atEOF(f.pos) {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	tok := p.Tokens.At(f.pos)
	if tok.IsCode {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	completeFrame(p, f, cst.NewTransparent(tok, f.pos), f.pos+1)
}

// matchAnything greedily consumes tokens up to the active terminator
// boundary (spec §4.3 "Anything"), trimming trailing non-code so the
// claimed span never ends mid-gap.
func (p *Parser) matchAnything(f *Frame) {
	maxIdx, hasMax := f.parentMaxIdx, f.hasParentMaxIdx
	maxIdx, hasMax = computeMaxIdx(p, f.pos, f.terminators, hasMax, maxIdx)
	end := p.Tokens.Len()
	if hasMax && maxIdx < end {
		end = maxIdx
	}
	if end <= f.pos {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	trimmed := lastCodeIndexBefore(p, end, f.pos)
	if trimmed < f.pos {
		completeFrame(p, f, cst.Empty, f.pos)
		return
	}
	end = trimmed + 1
	children := make([]cst.Node, 0, end-f.pos)
	for i := f.pos; i < end; i++ {
		tok := p.Tokens.At(i)
		if tok.IsCode {
			children = append(children, cst.NewToken(tok.TokenType, tok.Raw, i))
		} else {
			children = append(children, cst.NewTransparent(tok, i))
		}
	}
	completeFrame(p, f, cst.NewSequence(children), end)
}

// matchTerminalAt is the boundary-checking counterpart used by terminator
// scanning (spec §4.11): it answers "would this grammar match starting at
// idx" without allocating a node or pushing a frame. Only the single-token
// matchers (StringParser, MultiStringParser, TypedParser, Token,
// RegexParser) are evaluated; every other variant, including composite
// grammars such as Sequence, OneOf and Ref, is not expanded and reports no
// match here.
func matchTerminalAt(p *Parser, id grammar.ID, idx int) bool {
	if idx >= p.Tokens.Len() {
		return false
	}
	tok := p.Tokens.At(idx)
	if !tok.IsCode {
		return false
	}
	switch p.Ctx.Variant(id) {
	case grammar.StringParser:
		return upper(tok.Raw) == upper(p.Ctx.Template(id))
	case grammar.MultiStringParser:
		raw := upper(tok.Raw)
		for _, want := range p.Ctx.Templates(id) {
			if raw == upper(want) {
				return true
			}
		}
		return false
	case grammar.TypedParser:
		return tok.TokenType == p.Ctx.ProducedTokenType(id)
	case grammar.Token:
		return tok.Raw == p.Ctx.Template(id)
	case grammar.RegexParser:
		re := p.Ctx.RegexPattern(id)
		if re == nil || !re.MatchString(tok.Raw) {
			return false
		}
		anti, ok := p.Ctx.AntiPattern(id)
		return !ok || anti == nil || !anti.MatchString(tok.Raw)
	default:
		return false
	}
}
