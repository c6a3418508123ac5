package driver_test

import (
	"testing"

	"github.com/parsekit/gramsql/driver"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/internal/fixture"
)

// TestHintSoundness checks spec §8's cross-check: enabling simple-hint
// pruning must never change the resulting CST, only how much work the
// engine does to get there.
func TestHintSoundness(t *testing.T) {
	inputs := []string{
		"SELECT * FROM t",
		"SELECT a, b FROM t",
		"SELECT a FROM t WHERE a = 1",
		"SELECT a FROM t WHERE (a = 1) AND b = 2",
		"SELECT a FROM t WHERE a = 1 AND (b = 2 OR c = 3)",
	}
	for _, src := range inputs {
		toks := fixture.Lex(src)
		hinted := grammar.NewContext(fixture.SQLTables())
		bare := grammar.NewContext(fixture.SQLTablesNoHints())

		p1 := driver.NewParser(toks, hinted)
		withHints, err := p1.ParseRoot()
		if err != nil {
			t.Fatalf("%q: hinted parse error: %v", src, err)
		}

		p2 := driver.NewParser(toks, bare)
		withoutHints, err := p2.ParseRoot()
		if err != nil {
			t.Fatalf("%q: unhinted parse error: %v", src, err)
		}

		if !cstEqual(withHints, withoutHints) {
			t.Errorf("%q: hinted and unhinted parses differ", src)
		}

		stats := p1.PruningStats()
		if stats.HintCalls == 0 {
			t.Errorf("%q: expected at least one hint pruning call", src)
		}
	}
}
