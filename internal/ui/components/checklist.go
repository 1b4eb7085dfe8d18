package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

// ChoicesChangedMsg is emitted after a checkbox was toggled.
type ChoicesChangedMsg struct {
	Choices picker.Choices
}

// ChecklistKeys are the bindings understood by Checklist.
type ChecklistKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

// DefaultChecklistKeys returns arrow/vim navigation and space to toggle.
func DefaultChecklistKeys() ChecklistKeys {
	return ChecklistKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space", "toggle")),
	}
}

// Bindings lists the keys for help rendering.
func (k ChecklistKeys) Bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle}
}

// Checklist is a vertical list of the picker options.
type Checklist struct {
	Choices picker.Choices
	Cursor  int
	Keys    ChecklistKeys
}

// NewChecklist creates a checklist with the given initial state.
func NewChecklist(c picker.Choices) Checklist {
	return Checklist{Choices: c, Keys: DefaultChecklistKeys()}
}

// Update handles keyboard navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	opts := picker.Options()
	switch {
	case key.Matches(kmsg, c.Keys.Up):
		if c.Cursor > 0 {
			c.Cursor--
		}
	case key.Matches(kmsg, c.Keys.Down):
		if c.Cursor < len(opts)-1 {
			c.Cursor++
		}
	case key.Matches(kmsg, c.Keys.Toggle):
		o := opts[c.Cursor]
		if !c.Choices.Enabled(o) {
			return c, nil
		}
		c.Choices.Toggle(o)
		choices := c.Choices
		return c, func() tea.Msg { return ChoicesChangedMsg{Choices: choices} }
	}
	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, o := range picker.Options() {
		box := "[ ]"
		if c.Choices.Get(o) {
			box = "[x]"
		}
		line := box + " " + o.Label()

		prefix := "    "
		if i == c.Cursor {
			prefix = "  ▸ "
		}

		switch {
		case !c.Choices.Enabled(o):
			s += prefix + theme.Disabled.Render(line) + "\n"
		case i == c.Cursor:
			s += theme.Selected.Render(prefix+line) + "\n"
		default:
			s += theme.Unselected.Render(prefix+line) + "\n"
		}
	}
	return s
}
