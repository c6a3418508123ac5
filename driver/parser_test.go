package driver_test

import (
	"testing"

	"github.com/parsekit/gramsql/cst"
	"github.com/parsekit/gramsql/driver"
	"github.com/parsekit/gramsql/grammar"
	"github.com/parsekit/gramsql/internal/fixture"
	"github.com/parsekit/gramsql/token"
)

func parseTokens(src string) token.Stream {
	return fixture.Lex(src)
}

func parseSQL(t *testing.T, src string, opts ...driver.ParserOption) cst.Node {
	t.Helper()
	toks := fixture.Lex(src)
	ctx := grammar.NewContext(fixture.SQLTables())
	p := driver.NewParser(toks, ctx, opts...)
	tree, err := p.ParseRoot()
	if err != nil {
		t.Fatalf("ParseRoot(%q) error: %v", src, err)
	}
	return tree
}

// tokenCoverage asserts spec §8's "token coverage" and "leaf order"
// invariants together: every token_idx from 0..n-1 appears exactly once,
// in strictly increasing order.
func tokenCoverage(t *testing.T, tree cst.Node, numTokens int) {
	t.Helper()
	got := tree.TokenIndices()
	if len(got) != numTokens {
		t.Fatalf("TokenIndices() has %d entries, want %d: %v", len(got), numTokens, got)
	}
	for i, idx := range got {
		if idx != i {
			t.Fatalf("TokenIndices() = %v, not strictly increasing from 0", got)
		}
	}
}

func TestParseRootSimpleSelect(t *testing.T) {
	src := "SELECT 1 FROM t"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var found bool
	for _, leaf := range tree.Leaves(nil) {
		if leaf.Kind == cst.KindToken && leaf.TokenType == fixture.TypeNumeric && leaf.Raw == "1" {
			found = true
		}
	}
	if !found {
		t.Error("expected a numeric_literal leaf with raw \"1\"")
	}
}

func TestParseRootColumnList(t *testing.T) {
	src := "SELECT a, b, c FROM t"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var list *cst.Node
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind == cst.KindDelimitedList && list == nil {
			cp := n
			list = &cp
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if list == nil {
		t.Fatal("expected a DelimitedList node for the column list")
	}
	// three elements interleaved with two commas: 5 children, not counting
	// any collected gaps.
	var commaCount int
	for _, c := range list.Children {
		if c.Kind == cst.KindToken && c.Raw == "," {
			commaCount++
		}
	}
	if commaCount != 2 {
		t.Errorf("DelimitedList has %d comma children, want 2 (delimiter must not terminate the list)", commaCount)
	}
}

func TestParseRootBracketedCondition(t *testing.T) {
	src := "SELECT * FROM t WHERE (a = 1)"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var brk *cst.Node
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind == cst.KindBracketed && brk == nil {
			cp := n
			brk = &cp
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if brk == nil {
		t.Fatal("expected a Bracketed node for the parenthesized condition")
	}
	if len(brk.Children) < 2 {
		t.Fatalf("Bracketed has %d children, want at least [open, ..., close]", len(brk.Children))
	}
	if brk.Children[0].Raw != "(" {
		t.Errorf("Bracketed first child = %q, want \"(\"", brk.Children[0].Raw)
	}
	if last := brk.Children[len(brk.Children)-1]; last.Raw != ")" {
		t.Errorf("Bracketed last child = %q, want \")\"", last.Raw)
	}
}

func TestParseRootAndChain(t *testing.T) {
	src := "SELECT * FROM t WHERE a = 1 AND b = 2 AND c = 3"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var comparisons int
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind == cst.KindRef && n.Name == "Comparison" {
			comparisons++
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if comparisons != 3 {
		t.Errorf("found %d Comparison nodes, want 3", comparisons)
	}
}

func TestParseRootOrderByAscDesc(t *testing.T) {
	src := "SELECT a FROM t ORDER BY a DESC"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var sawDesc bool
	for _, leaf := range tree.Leaves(nil) {
		if leaf.Kind == cst.KindToken && leaf.Raw == "DESC" {
			sawDesc = true
		}
	}
	if !sawDesc {
		t.Error("expected a DESC token leaf")
	}
}

func TestParseRootGapsPreservedOnce(t *testing.T) {
	src := "SELECT  a  FROM  t"
	toks := fixture.Lex(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())
}

// TestDeterminism checks spec §8: parse_root is a pure function of its
// inputs.
func TestDeterminism(t *testing.T) {
	src := "SELECT a, b FROM t WHERE a = 1"
	t1 := parseSQL(t, src)
	t2 := parseSQL(t, src)
	if !cstEqual(t1, t2) {
		t.Error("two ParseRoot calls on identical input produced different trees")
	}
}

// TestIdempotentCaching checks spec §8: enabling/disabling the cache must
// not change the resulting CST.
func TestIdempotentCaching(t *testing.T) {
	src := "SELECT a, b, c FROM t WHERE a = 1 AND b = 2 ORDER BY a ASC"
	cached := parseSQL(t, src, driver.WithCache(true))
	uncached := parseSQL(t, src, driver.WithCache(false))
	if !cstEqual(cached, uncached) {
		t.Error("cached and uncached parses produced different trees")
	}
}

func TestEmptyTokenStream(t *testing.T) {
	toks := fixture.Lex("")
	ctx := grammar.NewContext(fixture.SQLTables())
	p := driver.NewParser(toks, ctx)
	tree, err := p.ParseRoot()
	if err != nil {
		t.Fatalf("ParseRoot(\"\") error: %v", err)
	}
	for _, leaf := range tree.Leaves(nil) {
		if leaf.Kind != cst.KindEndOfFile && leaf.Kind != cst.KindWhitespace && leaf.Kind != cst.KindNewline && leaf.Kind != cst.KindMeta {
			t.Errorf("empty-input leaf %v is not a meta/transparent leaf", leaf.Kind)
		}
	}
}

func cstEqual(a, b cst.Node) bool {
	if a.Kind != b.Kind || a.Raw != b.Raw || a.Name != b.Name || a.SegmentType != b.SegmentType {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !cstEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
