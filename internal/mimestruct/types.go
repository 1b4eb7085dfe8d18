package mimestruct

// Structure names the root layout chosen for a message.
type Structure string

const (
	StructureSimple                  Structure = "simple"
	StructureAlternative             Structure = "alternative"
	StructureRelated                 Structure = "related"
	StructureMixed                   Structure = "mixed"
	StructureMixedRelated            Structure = "mixed-related"
	StructureMixedAlternative        Structure = "mixed-alternative"
	StructureRelatedAlternative      Structure = "related-alternative"
	StructureMixedRelatedAlternative Structure = "mixed-related-alternative"
)

// Label returns the display name, e.g. "Mixed + Related".
func (s Structure) Label() string {
	switch s {
	case StructureSimple:
		return "Simple"
	case StructureAlternative:
		return "Alternative"
	case StructureRelated:
		return "Related"
	case StructureMixed:
		return "Mixed"
	case StructureMixedRelated:
		return "Mixed + Related"
	case StructureMixedAlternative:
		return "Mixed + Alternative"
	case StructureRelatedAlternative:
		return "Related + Alternative"
	case StructureMixedRelatedAlternative:
		return "Mixed + Related + Alternative"
	}
	return string(s)
}

// RootPart returns the multipart group wrapping the whole message, or the
// empty Part for StructureSimple.
func (s Structure) RootPart() Part {
	switch s {
	case StructureAlternative:
		return PartAlternative
	case StructureRelated, StructureRelatedAlternative:
		return PartRelated
	case StructureMixed, StructureMixedRelated, StructureMixedAlternative, StructureMixedRelatedAlternative:
		return PartMixed
	}
	return ""
}

// Structures lists every structure in dispatch priority order.
func Structures() []Structure {
	return []Structure{
		StructureSimple,
		StructureAlternative,
		StructureRelated,
		StructureMixed,
		StructureMixedRelated,
		StructureMixedAlternative,
		StructureRelatedAlternative,
		StructureMixedRelatedAlternative,
	}
}

// Part is a node kind in a structure: a multipart group or a content leaf.
type Part string

const (
	PartAlternative Part = "alternative"
	PartRelated     Part = "related"
	PartMixed       Part = "mixed"

	PartPlainText   Part = "plain-text"
	PartHTMLText    Part = "html-text"
	PartCalendar    Part = "icalendar-text"
	PartEmbedded    Part = "embeddable-content"
	PartForward     Part = "forwarded-email"
	PartAttachments Part = "downloadable-attachments"
)

// IsGroup reports whether p is a multipart container.
func (p Part) IsGroup() bool {
	return p == PartAlternative || p == PartRelated || p == PartMixed
}

// Label returns the human readable name of the part.
func (p Part) Label() string {
	switch p {
	case PartPlainText:
		return "Plain text"
	case PartHTMLText:
		return "HTML text"
	case PartCalendar:
		return "iCalendar text"
	case PartEmbedded:
		return "embeddable content"
	case PartForward:
		return "forwarded email"
	case PartAttachments:
		return "downloadable attachments"
	}
	return string(p)
}

// MediaType returns the MIME media type used for the part.
func (p Part) MediaType() string {
	switch p {
	case PartAlternative, PartRelated, PartMixed:
		return "multipart/" + string(p)
	case PartPlainText:
		return "text/plain"
	case PartHTMLText:
		return "text/html"
	case PartCalendar:
		return "text/calendar"
	case PartEmbedded:
		return "image/png"
	case PartForward:
		return "message/rfc822"
	case PartAttachments:
		return "application/octet-stream"
	}
	return ""
}

// Node is one element of a structure tree.
type Node struct {
	Part     Part
	Children []Node
}

// Leaf returns a childless node.
func Leaf(p Part) Node {
	return Node{Part: p}
}

// Group returns a group node holding children.
func Group(p Part, children ...Node) Node {
	return Node{Part: p, Children: children}
}

// Result is the structure chosen for a Features value. Children are the
// direct contents of the root container; for StructureSimple there is no
// container and Children are the message's top-level parts.
type Result struct {
	Structure Structure
	Children  []Node
}

// Root returns the result as a single tree. For StructureSimple the root
// node has an empty Part.
func (r Result) Root() Node {
	return Node{Part: r.Structure.RootPart(), Children: r.Children}
}

// Contains reports whether p occurs anywhere in the result.
func (r Result) Contains(p Part) bool {
	return containsPart(r.Children, p)
}

func containsPart(nodes []Node, p Part) bool {
	for _, n := range nodes {
		if n.Part == p || containsPart(n.Children, p) {
			return true
		}
	}
	return false
}
