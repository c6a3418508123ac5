package driver_test

import (
	"testing"

	"github.com/parsekit/gramsql/cst"
)

// TestDelimitedSingleElementNoDelimiter checks spec §8's boundary case: a
// Delimited with min_delimiters=0 and a single element yields a
// DelimitedList of length 1 (element, no delimiter).
func TestDelimitedSingleElementNoDelimiter(t *testing.T) {
	src := "SELECT a FROM t"
	toks := parseTokens(src)
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
		t.Fatal("expected a DelimitedList for the single-column list")
	}
	if len(list.Children) != 1 {
		t.Errorf("DelimitedList has %d children, want 1 (element only, no delimiter)", len(list.Children))
	}
}

// TestAnyNumberOfMinZeroNoMatch checks spec §8's boundary case: an
// AnyNumberOf with min_times=0 and no matchable element consumes no
// tokens and leaves the surrounding parse unaffected. QualifiedName's
// trailing "(.identifier)*" loop never fires for an unqualified name.
func TestAnyNumberOfMinZeroNoMatch(t *testing.T) {
	src := "SELECT a FROM t"
	toks := parseTokens(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())
}

// TestBracketedNesting checks spec §8's bracket fidelity property on a
// nested parenthesized condition: every Bracketed node is
// [open_leaf, ...inner, close_leaf] and inner parsing stays within the
// bracket span.
func TestBracketedNesting(t *testing.T) {
	src := "SELECT a FROM t WHERE ((a = 1))"
	toks := parseTokens(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var brackets []cst.Node
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind == cst.KindBracketed {
			brackets = append(brackets, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if len(brackets) != 2 {
		t.Fatalf("found %d Bracketed nodes, want 2 for doubly-parenthesized condition", len(brackets))
	}
	for _, b := range brackets {
		if len(b.Children) < 2 || b.Children[0].Raw != "(" || b.Children[len(b.Children)-1].Raw != ")" {
			t.Errorf("Bracketed node malformed: %+v", b)
		}
	}
}

// TestRollbackSoundness checks spec §8: when attempts that already claimed
// whitespace fail and are abandoned, no token is claimed twice or dropped.
// Here QualifiedName's optional ".identifier" tail claims the gap after
// each name before failing on "=", and the condition chain's delimiter
// probe after the final condition fails at end of input; Condition's OneOf
// picks Comparison for the bare "a = 1" and ParenCondition for "(b = 2)".
func TestRollbackSoundness(t *testing.T) {
	src := "SELECT a FROM t WHERE a = 1 OR (b = 2)"
	toks := parseTokens(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())
}

// TestGreedyOnceStartedAbsorbsTail checks spec §4.12/§9: once the
// top-level statement sequence has matched its first required element
// (SELECT), a later required element failing to match does not fail the
// whole parse — it is wrapped in a single Unparsable node covering the
// rest of the window, and every token is still accounted for.
func TestGreedyOnceStartedAbsorbsTail(t *testing.T) {
	src := "SELECT = FROM t"
	toks := parseTokens(src)
	tree := parseSQL(t, src)
	tokenCoverage(t, tree, toks.Len())

	var unparsable *cst.Node
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind == cst.KindUnparsable && unparsable == nil {
			cp := n
			unparsable = &cp
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
	if unparsable == nil {
		t.Fatal("expected a malformed column list to produce an Unparsable node under GreedyOnceStarted")
	}
	if unparsable.ExpectedMessage == "" {
		t.Error("expected Unparsable to record what it expected instead")
	}
}
