package driver

import (
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/token"
)

// pruneByHint filters candidates down to those whose simple hint (spec
// §4.13) does not rule out tok as a possible first token. A candidate
// without a hint is never pruned, since the absence of a hint carries no
// information — only a declared hint can justify skipping a tentative
// parse. Soundness requires this filter to never discard a candidate that
// would actually have matched; hintAllows enforces that by returning true
// whenever it cannot prove a mismatch.
func pruneByHint(p *Parser, candidates []grammar.ID, tok token.Token) []grammar.ID {
	out := make([]grammar.ID, 0, len(candidates))
	for _, id := range candidates {
		p.pruneStats.hintCalls++
		if hintAllows(p.Ctx, id, tok) {
			out = append(out, id)
		} else {
			p.pruneStats.hintPruned++
		}
	}
	return out
}
