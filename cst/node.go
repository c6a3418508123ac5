// Package cst defines the concrete syntax tree the engine produces: a
// tagged sum type that preserves every input token, including whitespace
// and comments (spec §3.4, GLOSSARY "CST").
package cst

import "github.com/parsekit/gramsql/token"

// Kind discriminates the Node union.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindToken
	KindWhitespace
	KindNewline
	KindEndOfFile
	KindMeta
	KindSequence
	KindDelimitedList
	KindBracketed
	KindRef
	KindUnparsable
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindToken:
		return "Token"
	case KindWhitespace:
		return "Whitespace"
	case KindNewline:
		return "Newline"
	case KindEndOfFile:
		return "EndOfFile"
	case KindMeta:
		return "Meta"
	case KindSequence:
		return "Sequence"
	case KindDelimitedList:
		return "DelimitedList"
	case KindBracketed:
		return "Bracketed"
	case KindRef:
		return "Ref"
	case KindUnparsable:
		return "Unparsable"
	default:
		return "Unknown"
	}
}

// Node is one CST node. Only the fields relevant to Kind are populated;
// this mirrors the source's tagged-union Node enum without Go union types.
type Node struct {
	Kind Kind

	// Leaf fields (Token, Whitespace, Newline, EndOfFile, Meta).
	TokenType token.Type
	Raw       string
	TokenIdx  int
	HasIdx    bool // false for Meta nodes with no backing token

	// Composite fields (Sequence, DelimitedList, Bracketed, Unparsable; a
	// Ref keeps its single wrapped child here too).
	Children []Node

	// Ref fields.
	Name        string
	SegmentType string

	// Unparsable fields.
	ExpectedMessage string
}

// Empty is the canonical "no match" value.
var Empty = Node{Kind: KindEmpty}

// IsEmpty reports whether n represents a failed/empty match.
func (n Node) IsEmpty() bool {
	return n.Kind == KindEmpty
}

// NewToken builds a Token leaf.
func NewToken(tokenType token.Type, raw string, idx int) Node {
	return Node{Kind: KindToken, TokenType: tokenType, Raw: raw, TokenIdx: idx, HasIdx: true}
}

// NewTransparent builds a Whitespace/Newline/EndOfFile/Meta leaf for a
// transparent token, keyed off its lexer-assigned type.
func NewTransparent(t token.Token, idx int) Node {
	switch t.TokenType {
	case token.TypeWhitespace:
		return Node{Kind: KindWhitespace, Raw: t.Raw, TokenIdx: idx, HasIdx: true}
	case token.TypeNewline:
		return Node{Kind: KindNewline, Raw: t.Raw, TokenIdx: idx, HasIdx: true}
	case token.TypeEndOfFile:
		return Node{Kind: KindEndOfFile, Raw: t.Raw, TokenIdx: idx, HasIdx: true}
	default:
		return Node{Kind: KindMeta, TokenType: t.TokenType, Raw: t.Raw, TokenIdx: idx, HasIdx: true}
	}
}

// NewSequence builds a Sequence composite. An empty children slice collapses
// to Empty so callers never have to special-case a zero-length Sequence.
func NewSequence(children []Node) Node {
	if len(children) == 0 {
		return Empty
	}
	if len(children) == 1 {
		return children[0]
	}
	return Node{Kind: KindSequence, Children: children}
}

// NewDelimitedList builds a DelimitedList composite (elements interleaved
// with delimiters, both kept — spec §3.4).
func NewDelimitedList(children []Node) Node {
	if len(children) == 0 {
		return Empty
	}
	return Node{Kind: KindDelimitedList, Children: children}
}

// NewBracketed builds a Bracketed composite: [open, ...content, close].
func NewBracketed(children []Node) Node {
	return Node{Kind: KindBracketed, Children: children}
}

// NewRef wraps child in a named rule wrapper.
func NewRef(name, segmentType string, child Node) Node {
	return Node{Kind: KindRef, Name: name, SegmentType: segmentType, Children: []Node{child}}
}

// NewUnparsable wraps a greedy region's unmatched tail.
func NewUnparsable(expected string, children []Node) Node {
	return Node{Kind: KindUnparsable, ExpectedMessage: expected, Children: children}
}

// Leaves appends, in order, every leaf (Token/Whitespace/Newline/EndOfFile/
// Meta) reachable from n to out.
func (n Node) Leaves(out []Node) []Node {
	switch n.Kind {
	case KindEmpty:
		return out
	case KindToken, KindWhitespace, KindNewline, KindEndOfFile, KindMeta:
		return append(out, n)
	default:
		for _, c := range n.Children {
			out = c.Leaves(out)
		}
		return out
	}
}

// TokenIndices returns the token_idx of every leaf in n, in tree order
// (spec §8: "Leaf order").
func (n Node) TokenIndices() []int {
	leaves := n.Leaves(nil)
	out := make([]int, 0, len(leaves))
	for _, l := range leaves {
		if l.HasIdx {
			out = append(out, l.TokenIdx)
		}
	}
	return out
}

// Deduplicate removes adjacent transparent leaves that carry the same
// token_idx, a defensive pass against double-collection when both a Ref and
// its child independently claim the same leading gap (spec §C.2 /
// original_source Node::deduplicate). It is a no-op on a well-formed tree.
func (n Node) Deduplicate() Node {
	switch n.Kind {
	case KindSequence, KindDelimitedList, KindBracketed, KindUnparsable:
		deduped := make([]Node, 0, len(n.Children))
		var lastIdx int
		var haveLast bool
		for _, c := range n.Children {
			c = c.Deduplicate()
			if c.HasIdx && haveLast && c.TokenIdx == lastIdx &&
				(c.Kind == KindWhitespace || c.Kind == KindNewline || c.Kind == KindMeta) {
				continue
			}
			if c.HasIdx {
				lastIdx = c.TokenIdx
				haveLast = true
			}
			deduped = append(deduped, c)
		}
		n.Children = deduped
		return n
	case KindRef:
		if len(n.Children) == 1 {
			n.Children = []Node{n.Children[0].Deduplicate()}
		}
		return n
	default:
		return n
	}
}
