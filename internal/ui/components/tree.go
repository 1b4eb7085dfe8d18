package components

import (
	"charm.land/lipgloss/v2/tree"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

// StructureTree renders a classification result as a styled tree.
func StructureTree(r mimestruct.Result) string {
	if r.Structure == mimestruct.StructureSimple && len(r.Children) == 0 {
		return theme.Hint.Render(render.EmptyMessage)
	}

	t := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(theme.Hint).
		ItemStyle(theme.Leaf)

	if r.Structure != mimestruct.StructureSimple {
		t = t.Root(string(r.Structure.RootPart()) + " (root)").RootStyle(theme.Group)
	}
	for _, n := range r.Children {
		t = t.Child(treeNode(n))
	}
	return t.String()
}

func treeNode(n mimestruct.Node) any {
	if !n.Part.IsGroup() {
		return n.Part.Label() + "  " + theme.Hint.Render(n.Part.MediaType())
	}
	sub := tree.Root(theme.Group.Render(n.Part.Label())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(theme.Hint).
		ItemStyle(theme.Leaf)
	for _, c := range n.Children {
		sub = sub.Child(treeNode(c))
	}
	return sub
}
