package mimestruct

// Strategy pairs a compatibility predicate with a structure builder.
// Build is only defined for Features accepted by Compatible.
type Strategy interface {
	Name() string
	Structure() Structure
	Compatible(f Features) bool
	Build(f Features) Result
}

// shapeStrategy accepts exactly one Shape, so the eight instances partition
// the feature space.
type shapeStrategy struct {
	structure Structure
	shape     Shape
	build     func(Features) []Node
}

func (s shapeStrategy) Name() string         { return string(s.structure) }
func (s shapeStrategy) Structure() Structure { return s.structure }

func (s shapeStrategy) Compatible(f Features) bool {
	return f.Shape() == s.shape
}

func (s shapeStrategy) Build(f Features) Result {
	return Result{Structure: s.structure, Children: s.build(f)}
}

var (
	simpleStrategy = shapeStrategy{
		structure: StructureSimple,
		shape:     0,
		build:     texts,
	}
	alternativeStrategy = shapeStrategy{
		structure: StructureAlternative,
		shape:     ShapeAlternative,
		build:     texts,
	}
	relatedStrategy = shapeStrategy{
		structure: StructureRelated,
		shape:     ShapeRelated,
		build: func(f Features) []Node {
			return append(texts(f), Leaf(PartEmbedded))
		},
	}
	mixedStrategy = shapeStrategy{
		structure: StructureMixed,
		shape:     ShapeMixed,
		build: func(f Features) []Node {
			return append(texts(f), mixedLeaves(f)...)
		},
	}
	mixedRelatedStrategy = shapeStrategy{
		structure: StructureMixedRelated,
		shape:     ShapeMixed | ShapeRelated,
		build: func(f Features) []Node {
			related := Group(PartRelated, append(texts(f), Leaf(PartEmbedded))...)
			return append([]Node{related}, mixedLeaves(f)...)
		},
	}
	mixedAlternativeStrategy = shapeStrategy{
		structure: StructureMixedAlternative,
		shape:     ShapeMixed | ShapeAlternative,
		build: func(f Features) []Node {
			alternative := Group(PartAlternative, texts(f)...)
			return append([]Node{alternative}, mixedLeaves(f)...)
		},
	}
	relatedAlternativeStrategy = shapeStrategy{
		structure: StructureRelatedAlternative,
		shape:     ShapeRelated | ShapeAlternative,
		build: func(f Features) []Node {
			return []Node{
				Group(PartAlternative, texts(f)...),
				Leaf(PartEmbedded),
			}
		},
	}
	mixedRelatedAlternativeStrategy = shapeStrategy{
		structure: StructureMixedRelatedAlternative,
		shape:     ShapeMixed | ShapeRelated | ShapeAlternative,
		build: func(f Features) []Node {
			related := Group(PartRelated,
				Group(PartAlternative, texts(f)...),
				Leaf(PartEmbedded),
			)
			return append([]Node{related}, mixedLeaves(f)...)
		},
	}
)

// texts returns the body representations present in f, in the order plain
// text, HTML, iCalendar.
func texts(f Features) []Node {
	nodes := make([]Node, 0, 3)
	if f.PlainText {
		nodes = append(nodes, Leaf(PartPlainText))
	}
	if f.HTMLText {
		nodes = append(nodes, Leaf(PartHTMLText))
	}
	if f.CalendarEvent {
		nodes = append(nodes, Leaf(PartCalendar))
	}
	return nodes
}

// mixedLeaves returns the forwarded message and attachment leaves present
// in f.
func mixedLeaves(f Features) []Node {
	var nodes []Node
	if f.EmailForward {
		nodes = append(nodes, Leaf(PartForward))
	}
	if f.Attachments {
		nodes = append(nodes, Leaf(PartAttachments))
	}
	return nodes
}

// DefaultStrategies returns the strategies in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		simpleStrategy,
		alternativeStrategy,
		relatedStrategy,
		mixedStrategy,
		mixedRelatedStrategy,
		mixedAlternativeStrategy,
		relatedAlternativeStrategy,
		mixedRelatedAlternativeStrategy,
	}
}

// Classify returns the result of the first strategy compatible with f.
// A *ClassificationError is returned when none is.
func Classify(strategies []Strategy, f Features) (Result, error) {
	for _, s := range strategies {
		if s.Compatible(f) {
			return s.Build(f), nil
		}
	}
	return Result{}, &ClassificationError{Features: f}
}

// Determine classifies f with DefaultStrategies.
func Determine(f Features) (Result, error) {
	return Classify(DefaultStrategies(), f)
}

// MustDetermine is like Determine but panics on a ClassificationError.
// The default strategies cover every input, so a panic means the strategy
// table is broken.
func MustDetermine(f Features) Result {
	r, err := Determine(f)
	if err != nil {
		panic(err)
	}
	return r
}
