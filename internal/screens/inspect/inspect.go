package inspect

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/simplejavamail/rfcpicker/internal/detect"
	"github.com/simplejavamail/rfcpicker/internal/router"
	"github.com/simplejavamail/rfcpicker/internal/screen"
	"github.com/simplejavamail/rfcpicker/internal/store"
	"github.com/simplejavamail/rfcpicker/internal/ui/components"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

type inspectedMsg struct {
	Path   string
	Report *detect.Report
	Err    error
}

// InspectScreen asks for an .eml path and shows how its layout compares
// with the recommended structure.
type InspectScreen struct {
	events store.EventRepo
	input  components.PathInput
	report *detect.Report
	path   string
	errMsg string
	submit key.Binding
	back   key.Binding
}

var _ screen.Screen = (*InspectScreen)(nil)
var _ screen.KeyHintProvider = (*InspectScreen)(nil)

// New creates an InspectScreen. events may be nil.
func New(events store.EventRepo) *InspectScreen {
	return &InspectScreen{
		events: events,
		input:  components.NewPathInput("path/to/message.eml"),
		submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (s *InspectScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *InspectScreen) Title() string {
	return "Inspect message"
}

func (s *InspectScreen) KeyHints() []key.Binding {
	return []key.Binding{s.submit, s.back}
}

// Report returns the last successful inspection, if any.
func (s *InspectScreen) Report() *detect.Report {
	return s.report
}

func (s *InspectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case inspectedMsg:
		s.path = msg.Path
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.report = nil
			s.input.Fail(msg.Err)
		} else {
			s.errMsg = ""
			s.report = msg.Report
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.back):
			return s, router.Pop
		case key.Matches(msg, s.submit):
			if err := s.input.Check(); err != nil {
				s.errMsg = err.Error()
				s.report = nil
				return s, nil
			}
			return s, s.inspectCmd(s.input.Path())
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InspectScreen) inspectCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	events := s.events
	return func() tea.Msg {
		rep, err := InspectFile(path)
		if err != nil {
			return inspectedMsg{Path: path, Err: err}
		}
		if events != nil {
			// History is best effort here.
			_, _ = events.Append(context.Background(), store.Event{
				Features:  rep.Features,
				Structure: rep.Recommended.Structure,
				Source:    store.SourceInspect,
			})
		}
		return inspectedMsg{Path: path, Report: rep}
	}
}

// InspectFile opens and inspects the message at path.
func InspectFile(path string) (*detect.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return detect.FromReader(f)
}

func (s *InspectScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("Message file"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(theme.Bad.Render("Error: " + s.errMsg))
	case s.report != nil:
		b.WriteString(RenderReport(s.report))
	default:
		b.WriteString(theme.Hint.Render("Enter the path of a raw RFC 5322 message."))
	}

	return lipgloss.NewStyle().Padding(0, 2).Width(width).Render(b.String())
}

// RenderReport formats a report for the terminal.
func RenderReport(rep *detect.Report) string {
	var b strings.Builder

	verdict := theme.Good.Render("✓ layout matches the recommended structure")
	if !rep.RootsAgree {
		verdict = theme.Bad.Render(fmt.Sprintf("✗ root is %s, expected %s", rep.ActualRoot, rep.ExpectedRoot))
	}
	b.WriteString(verdict)
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Recommended: " + rep.Recommended.Structure.Label()))
	b.WriteString("\n")
	b.WriteString(components.StructureTree(rep.Recommended))
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Parts"))
	b.WriteString("\n")
	for _, p := range rep.Parts {
		name := p.FileName
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "  %-8s %-28s %-10s %-24s %s\n",
			p.Path, p.ContentType, p.Disposition, name, humanize.Bytes(uint64(p.Size)))
	}
	for _, w := range rep.ParseWarnings {
		b.WriteString(theme.Hint.Render("  warning: " + w))
		b.WriteString("\n")
	}
	return b.String()
}
