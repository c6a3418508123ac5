package cst

import (
	"fmt"
	"io"
)

// PrintTree renders node as an indented tree, in the same ASCII-art style
// as the teacher driver's PrintTree.
func PrintTree(w io.Writer, node Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node Node, ruledLine string, childPrefix string) {
	if node.Raw != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, label(node), node.Raw)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, label(node))
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childPrefix+line, childPrefix+prefix)
	}
}

func label(n Node) string {
	switch n.Kind {
	case KindRef:
		if n.SegmentType != "" {
			return fmt.Sprintf("%s(%s)", n.Name, n.SegmentType)
		}
		return n.Name
	case KindUnparsable:
		return fmt.Sprintf("Unparsable(%s)", n.ExpectedMessage)
	case KindToken, KindMeta:
		return string(n.TokenType)
	default:
		return n.Kind.String()
	}
}
