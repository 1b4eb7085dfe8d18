package render

import (
	"strings"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// EmptyMessage is rendered for a simple structure without any content.
const EmptyMessage = "(empty message)"

// Text renders r as an indented bullet tree, one tab per level:
//
//	- mixed (root)
//		- related
//			- HTML text
//			- embeddable content
//		- downloadable attachments
func Text(r mimestruct.Result) string {
	var b strings.Builder
	if r.Structure == mimestruct.StructureSimple {
		if len(r.Children) == 0 {
			return EmptyMessage + "\n"
		}
		writeNodes(&b, r.Children, 0)
		return b.String()
	}

	b.WriteString("- ")
	b.WriteString(string(r.Structure.RootPart()))
	b.WriteString(" (root)\n")
	writeNodes(&b, r.Children, 1)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []mimestruct.Node, depth int) {
	for _, n := range nodes {
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString("- ")
		b.WriteString(n.Part.Label())
		b.WriteString("\n")
		writeNodes(b, n.Children, depth+1)
	}
}
