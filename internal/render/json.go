package render

import (
	"encoding/json"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// Document is the JSON form of a classification result.
type Document struct {
	Structure mimestruct.Structure `json:"structure"`
	Label     string               `json:"label"`
	Root      string               `json:"root,omitempty"`
	Children  []DocumentNode       `json:"children"`
}

// DocumentNode is one part in a Document.
type DocumentNode struct {
	Part      mimestruct.Part `json:"part"`
	Label     string          `json:"label"`
	MediaType string          `json:"media_type"`
	Children  []DocumentNode  `json:"children,omitempty"`
}

// NewDocument converts r to its JSON document form.
func NewDocument(r mimestruct.Result) Document {
	return Document{
		Structure: r.Structure,
		Label:     r.Structure.Label(),
		Root:      string(r.Structure.RootPart()),
		Children:  toDocumentNodes(r.Children),
	}
}

// JSON renders r as an indented JSON document.
func JSON(r mimestruct.Result) ([]byte, error) {
	return json.MarshalIndent(NewDocument(r), "", "  ")
}

func toDocumentNodes(nodes []mimestruct.Node) []DocumentNode {
	out := make([]DocumentNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, DocumentNode{
			Part:      n.Part,
			Label:     n.Part.Label(),
			MediaType: n.Part.MediaType(),
			Children:  toDocumentNodes(n.Children),
		})
	}
	return out
}
