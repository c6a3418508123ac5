package cst

import (
	"strings"
	"testing"

	"github.com/parsekit/gramsql/token"
)

func TestTokenIndicesOrder(t *testing.T) {
	n := NewSequence([]Node{
		NewToken("keyword", "SELECT", 0),
		NewTransparent(token.Token{TokenType: token.TypeWhitespace, Raw: " "}, 1),
		NewToken("numeric_literal", "1", 2),
	})
	got := n.TokenIndices()
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("TokenIndices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("TokenIndices() = %v, want %v", got, want)
		}
	}
}

func TestNewSequenceCollapses(t *testing.T) {
	if got := NewSequence(nil); !got.IsEmpty() {
		t.Errorf("NewSequence(nil) = %v, want Empty", got)
	}
	single := NewToken("keyword", "SELECT", 0)
	if got := NewSequence([]Node{single}); got.Kind != KindToken {
		t.Errorf("NewSequence([1]) collapsed to %v, want Token", got.Kind)
	}
}

func TestDeduplicateRemovesAdjacentDuplicateWhitespace(t *testing.T) {
	ws := NewTransparent(token.Token{TokenType: token.TypeWhitespace, Raw: " "}, 1)
	n := Node{
		Kind: KindSequence,
		Children: []Node{
			NewToken("keyword", "SELECT", 0),
			ws,
			ws, // duplicate claim of the same position
			NewToken("numeric_literal", "1", 2),
		},
	}
	deduped := n.Deduplicate()
	if len(deduped.Children) != 3 {
		t.Fatalf("Deduplicate() children = %d, want 3", len(deduped.Children))
	}
}

func TestPrintTreeDoesNotPanic(t *testing.T) {
	n := NewRef("select_statement", "statement", NewSequence([]Node{
		NewToken("keyword", "SELECT", 0),
	}))
	var b strings.Builder
	PrintTree(&b, n)
	if !strings.Contains(b.String(), "SELECT") {
		t.Errorf("PrintTree output missing token text: %q", b.String())
	}
}
