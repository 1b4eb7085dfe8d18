package render

import (
	"html/template"
	"strings"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// listItem is what the list template sees.
type listItem struct {
	Label    string
	Class    string
	Children []listItem
}

// Recursive nested list; groups and leaves differ only by class.
const listHTML = `{{ define "item" }}<li class="{{ .Class }}">{{ .Label }}{{ if .Children }}<ul>{{ range .Children }}{{ template "item" . }}{{ end }}</ul>{{ end }}</li>{{ end }}<ul class="mime-structure">{{ range . }}{{ template "item" . }}{{ end }}</ul>`

// The template text is constant, so Must cannot panic at runtime.
var listTmpl = template.Must(template.New("structure").Parse(listHTML))

// HTML renders r as nested <ul> markup.
func HTML(r mimestruct.Result) (template.HTML, error) {
	var items []listItem
	switch {
	case r.Structure != mimestruct.StructureSimple:
		items = []listItem{{
			Label:    string(r.Structure.RootPart()) + " (root)",
			Class:    "group",
			Children: toItems(r.Children),
		}}
	case len(r.Children) == 0:
		items = []listItem{{Label: EmptyMessage, Class: "empty"}}
	default:
		items = toItems(r.Children)
	}

	var b strings.Builder
	if err := listTmpl.Execute(&b, items); err != nil {
		return "", err
	}
	// Content is escaped by html/template.
	return template.HTML(b.String()), nil
}

func toItems(nodes []mimestruct.Node) []listItem {
	items := make([]listItem, 0, len(nodes))
	for _, n := range nodes {
		class := "content"
		if n.Part.IsGroup() {
			class = "group"
		}
		items = append(items, listItem{
			Label:    n.Part.Label(),
			Class:    class,
			Children: toItems(n.Children),
		})
	}
	return items
}
