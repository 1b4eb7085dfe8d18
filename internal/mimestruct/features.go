package mimestruct

import "fmt"

// Features describes which kinds of content an outgoing email carries.
// Any combination is valid input, including the zero value.
type Features struct {
	PlainText       bool `json:"plain_text"`
	HTMLText        bool `json:"html_text"`
	CalendarEvent   bool `json:"calendar_event"`
	EmbeddedContent bool `json:"embedded_content"`
	Attachments     bool `json:"attachments"`
	EmailForward    bool `json:"email_forward"`
}

// Shape packs the three derived predicates into a 3-bit value.
type Shape uint8

const (
	ShapeAlternative Shape = 1 << iota
	ShapeRelated
	ShapeMixed
)

// Has reports whether every bit of other is set in s.
func (s Shape) Has(other Shape) bool {
	return s&other == other
}

// HasMixedContent is true when the email carries attachments or forwards
// another message.
func (f Features) HasMixedContent() bool {
	return f.Attachments || f.EmailForward
}

// HasRelatedContent is true when the email embeds inline resources.
func (f Features) HasRelatedContent() bool {
	return f.EmbeddedContent
}

// HasAlternativeContent is true when two or more body representations are
// present. A single text body is not alternative content.
func (f Features) HasAlternativeContent() bool {
	n := 0
	for _, b := range []bool{f.PlainText, f.HTMLText, f.CalendarEvent} {
		if b {
			n++
		}
	}
	return n > 1
}

// Shape returns the derived predicates as a Shape.
func (f Features) Shape() Shape {
	var s Shape
	if f.HasMixedContent() {
		s |= ShapeMixed
	}
	if f.HasRelatedContent() {
		s |= ShapeRelated
	}
	if f.HasAlternativeContent() {
		s |= ShapeAlternative
	}
	return s
}

// Bits encodes f as a 6-bit integer in field declaration order, PlainText
// being the least significant bit.
func (f Features) Bits() uint8 {
	var b uint8
	for i, v := range f.flags() {
		if v {
			b |= 1 << i
		}
	}
	return b
}

// FeaturesFromBits is the inverse of Features.Bits. Bits above the sixth
// are ignored.
func FeaturesFromBits(b uint8) Features {
	return Features{
		PlainText:       b&(1<<0) != 0,
		HTMLText:        b&(1<<1) != 0,
		CalendarEvent:   b&(1<<2) != 0,
		EmbeddedContent: b&(1<<3) != 0,
		Attachments:     b&(1<<4) != 0,
		EmailForward:    b&(1<<5) != 0,
	}
}

// AllFeatures returns all 64 feature combinations ordered by Bits.
func AllFeatures() []Features {
	all := make([]Features, 0, 64)
	for b := 0; b < 64; b++ {
		all = append(all, FeaturesFromBits(uint8(b)))
	}
	return all
}

func (f Features) flags() [6]bool {
	return [6]bool{f.PlainText, f.HTMLText, f.CalendarEvent, f.EmbeddedContent, f.Attachments, f.EmailForward}
}

func (f Features) String() string {
	return fmt.Sprintf("plain=%t html=%t calendar=%t embedded=%t attachments=%t forward=%t",
		f.PlainText, f.HTMLText, f.CalendarEvent, f.EmbeddedContent, f.Attachments, f.EmailForward)
}
