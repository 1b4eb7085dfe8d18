package picker

import "github.com/simplejavamail/rfcpicker/internal/mimestruct"

// Option identifies one checkbox of the picker.
type Option int

const (
	OptionPlainText Option = iota
	OptionHTMLText
	OptionEmbeddedContent
	OptionCalendarEvent
	OptionAttachments
	OptionEmailForward
)

// Options returns the options in display order.
func Options() []Option {
	return []Option{
		OptionPlainText,
		OptionHTMLText,
		OptionEmbeddedContent,
		OptionCalendarEvent,
		OptionAttachments,
		OptionEmailForward,
	}
}

// Label returns the checkbox caption.
func (o Option) Label() string {
	switch o {
	case OptionPlainText:
		return "Plain text"
	case OptionHTMLText:
		return "HTML text"
	case OptionEmbeddedContent:
		return "Embedded images (HTML only)"
	case OptionCalendarEvent:
		return "iCalendar event"
	case OptionAttachments:
		return "Attachments"
	case OptionEmailForward:
		return "Forwarded email"
	}
	return "unknown"
}

// Key returns the short name used in flags and query strings.
func (o Option) Key() string {
	switch o {
	case OptionPlainText:
		return "plain"
	case OptionHTMLText:
		return "html"
	case OptionEmbeddedContent:
		return "embedded"
	case OptionCalendarEvent:
		return "calendar"
	case OptionAttachments:
		return "attachments"
	case OptionEmailForward:
		return "forward"
	}
	return ""
}

// Choices is the mutable checkbox state behind a picker.
type Choices struct {
	PlainText       bool
	HTMLText        bool
	EmbeddedContent bool
	CalendarEvent   bool
	Attachments     bool
	EmailForward    bool
}

// Get returns the state of o.
func (c *Choices) Get(o Option) bool {
	if p := c.field(o); p != nil {
		return *p
	}
	return false
}

// Set changes the state of o and re-applies the HTML rule.
func (c *Choices) Set(o Option, v bool) {
	if p := c.field(o); p != nil {
		*p = v
	}
	c.normalize()
}

// Toggle flips o. Toggling embedded content while HTML is off is a no-op.
func (c *Choices) Toggle(o Option) {
	c.Set(o, !c.Get(o))
}

// Enabled reports whether o can currently be checked.
func (c *Choices) Enabled(o Option) bool {
	return o != OptionEmbeddedContent || c.HTMLText
}

// Features returns the feature vector, with embedded content cleared when
// HTML is off. c itself is left unchanged.
func (c Choices) Features() mimestruct.Features {
	c.normalize()
	return mimestruct.Features{
		PlainText:       c.PlainText,
		HTMLText:        c.HTMLText,
		CalendarEvent:   c.CalendarEvent,
		EmbeddedContent: c.EmbeddedContent,
		Attachments:     c.Attachments,
		EmailForward:    c.EmailForward,
	}
}

// Classify returns the structure for the current choices.
func (c Choices) Classify() (mimestruct.Result, error) {
	return mimestruct.Determine(c.Features())
}

func (c *Choices) normalize() {
	if !c.HTMLText {
		c.EmbeddedContent = false
	}
}

func (c *Choices) field(o Option) *bool {
	switch o {
	case OptionPlainText:
		return &c.PlainText
	case OptionHTMLText:
		return &c.HTMLText
	case OptionEmbeddedContent:
		return &c.EmbeddedContent
	case OptionCalendarEvent:
		return &c.CalendarEvent
	case OptionAttachments:
		return &c.Attachments
	case OptionEmailForward:
		return &c.EmailForward
	}
	return nil
}

// FromLookup builds Choices from a key lookup, e.g. url.Values.Has or a
// set of CLI flags. The HTML rule is applied.
func FromLookup(has func(key string) bool) Choices {
	var c Choices
	for _, o := range Options() {
		if has(o.Key()) {
			if p := c.field(o); p != nil {
				*p = true
			}
		}
	}
	c.normalize()
	return c
}
