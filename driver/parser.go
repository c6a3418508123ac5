package driver

import (
	"github.com/google/uuid"

	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/parseerr"
	"github.com/parsekit/gramsql/token"
)

// pruningStats counts how often simple-hint pruning (spec §4.13) and the
// parse cache (spec §4.14) actually saved work, mirroring the
// pruning_calls/pruning_total instrumentation the original engine tracked.
// Exposed read-only via Parser.PruningStats.
type pruningStats struct {
	hintCalls  int
	hintPruned int
	cacheHits  int
}

// PruningStats is a snapshot of a Parser's pruning and cache effectiveness
// after a parse, useful for grammar authors tuning simple hints.
type PruningStats struct {
	HintCalls  int
	HintPruned int
	CacheHits  int
}

// Parser runs one parse of a token.Stream against a compiled grammar.Tables
// (spec §5: "one Parser instance owns exactly one parse"). A Parser is not
// safe for concurrent use by multiple goroutines, but independent Parser
// instances over the same immutable Tables may run concurrently.
type Parser struct {
	ID uuid.UUID

	Tokens token.Stream
	Ctx    *grammar.Context

	// Trace, if non-nil, is called with a printf-style format for every
	// frame transition (dispatch, resumption after a child, completion).
	// It is nil by default; cmd/sqlparse wires it to a stderr logger's
	// Printf under --trace.
	Trace func(format string, args ...any)

	cache       *parseCache
	checkpoints *checkpointLog
	pruneStats  pruningStats

	stack    []*Frame
	results  map[uint64]frameResult
	frameSeq uint64
}

// ParserOption configures a Parser at construction time, following the
// teacher's functional-options convention (nihei9-vartan's
// driver.ParserOption / MakeAST / MakeCST).
type ParserOption func(*Parser)

// WithCache toggles the parse cache (spec §4.14). It defaults to enabled;
// disabling it is mainly useful for isolating cache-related bugs in tests,
// mirroring the original engine's set_cache_enabled escape hatch.
func WithCache(enabled bool) ParserOption {
	return func(p *Parser) {
		p.cache.enabled = enabled
	}
}

// WithTrace installs a diagnostic hook invoked on every frame transition.
func WithTrace(fn func(format string, args ...any)) ParserOption {
	return func(p *Parser) {
		p.Trace = fn
	}
}

// NewParser builds a Parser over tokens and the given compiled grammar
// context.
func NewParser(tokens token.Stream, ctx *grammar.Context, opts ...ParserOption) *Parser {
	p := &Parser{
		ID:          uuid.New(),
		Tokens:      tokens,
		Ctx:         ctx,
		cache:       newParseCache(),
		checkpoints: newCheckpointLog(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PruningStats reports how effective simple-hint pruning and the parse
// cache were during the most recent ParseRoot call.
func (p *Parser) PruningStats() PruningStats {
	return PruningStats{
		HintCalls:  p.pruneStats.hintCalls,
		HintPruned: p.pruneStats.hintPruned,
		CacheHits:  p.pruneStats.cacheHits,
	}
}

func (p *Parser) trace(format string, args ...any) {
	if p.Trace != nil {
		p.Trace(format, args...)
	}
}

func malformed(p *Parser, detail string, pos int) error {
	return parseerr.MalformedGrammar(detail, &pos, p.ID)
}

// ParseRoot parses the whole token stream against the grammar's root
// production and wraps the result the way the original root-call wrapper
// did (spec-supplement C.1): trailing non-code tokens are set aside before
// the real parse runs, the root production is matched against everything
// before them, and the trailing trivia is reattached as trailing children
// of a synthetic "Root" ref rather than being silently dropped or forcing
// the grammar author to account for end-of-file whitespace explicitly.
func (p *Parser) ParseRoot() (cst.Node, error) {
	p.pruneStats = pruningStats{}
	if p.Tokens.Len() == 0 {
		return cst.NewRef("Root", "file", cst.Empty), nil
	}

	lastCode := p.Tokens.LastCodeIndexBefore(p.Tokens.Len())
	bodyEnd := lastCode + 1

	root := p.newFrame(p.Ctx.Root(), 0, nil, true, bodyEnd)
	node, endPos, err := p.run(root)
	if err != nil {
		return cst.Empty, err
	}

	children := []cst.Node{node}
	for i := endPos; i < p.Tokens.Len(); i++ {
		tok := p.Tokens.At(i)
		children = append(children, cst.NewTransparent(tok, i))
	}

	result := cst.NewRef("Root", "file", cst.NewSequence(children))
	return result.Deduplicate(), nil
}
