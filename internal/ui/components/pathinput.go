package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

// PathInput is a single-line field for a file path. Submitted paths are
// checked before they are handed to the caller.
type PathInput struct {
	Model textinput.Model
	// checked is set after Check until the next edit.
	checked bool
	err     error
}

// NewPathInput creates a focused path field.
func NewPathInput(placeholder string) PathInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Focus()
	return PathInput{Model: ti}
}

func (p PathInput) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update forwards msg to the field. Any key press clears the last check.
func (p PathInput) Update(msg tea.Msg) (PathInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		p.checked = false
		p.err = nil
	}
	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// Path returns the entered path with surrounding space trimmed and a
// leading ~ expanded to the home directory.
func (p PathInput) Path() string {
	path := strings.TrimSpace(p.Model.Value())
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Check verifies that Path names a regular file and remembers the outcome
// for View.
func (p *PathInput) Check() error {
	p.checked = true
	p.err = checkFile(p.Path())
	return p.err
}

// Fail marks the path as rejected by a later step, e.g. a parse error.
func (p *PathInput) Fail(err error) {
	p.checked = true
	p.err = err
}

func (p PathInput) View() string {
	view := p.Model.View()
	if !p.checked {
		return view
	}
	if p.err != nil {
		return view + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
}

func checkFile(path string) error {
	if path == "" {
		return fmt.Errorf("no path given")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}
