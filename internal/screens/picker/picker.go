package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/mavensearch"
	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/router"
	"github.com/simplejavamail/rfcpicker/internal/screen"
	"github.com/simplejavamail/rfcpicker/internal/screens/history"
	"github.com/simplejavamail/rfcpicker/internal/screens/inspect"
	"github.com/simplejavamail/rfcpicker/internal/store"
	"github.com/simplejavamail/rfcpicker/internal/ui/components"
	"github.com/simplejavamail/rfcpicker/internal/ui/layout"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

const lookupTimeout = 30 * time.Second

// DependencyResolvedMsg carries a finished version lookup.
type DependencyResolvedMsg struct {
	Resolution dependency.Resolution
}

type eventRecordedMsg struct {
	Structure mimestruct.Structure
	Err       error
}

type keyMap struct {
	Record  key.Binding
	Refresh key.Binding
	MIME    key.Binding
	History key.Binding
	Inspect key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Record:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh version")),
		MIME:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "tree/MIME")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect .eml")),
	}
}

// Deps are the services the picker uses. Both may be nil.
type Deps struct {
	Dependency *dependency.Service
	Events     store.EventRepo
}

// PickerScreen is the checklist with the live structure preview.
type PickerScreen struct {
	deps      Deps
	checklist components.Checklist
	keys      keyMap
	result    mimestruct.Result
	display   *mavensearch.Display
	lookups   int
	showMIME  bool
	status    string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a PickerScreen starting from initial.
func New(deps Deps, initial picker.Choices) *PickerScreen {
	groupID, artifactID := mavensearch.DefaultGroupID, mavensearch.DefaultArtifactID
	if deps.Dependency != nil {
		groupID, artifactID = deps.Dependency.Coordinates()
	}

	s := &PickerScreen{
		deps:      deps,
		checklist: components.NewChecklist(initial),
		keys:      defaultKeys(),
		display:   mavensearch.NewDisplay(groupID, artifactID),
	}
	s.reclassify()
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	return s.lookupCmd()
}

func (s *PickerScreen) Title() string {
	return "MIME structure picker"
}

func (s *PickerScreen) KeyHints() []key.Binding {
	return append(s.checklist.Keys.Bindings(),
		s.keys.Record, s.keys.MIME, s.keys.Refresh, s.keys.History, s.keys.Inspect)
}

// Result returns the structure for the current choices.
func (s *PickerScreen) Result() mimestruct.Result {
	return s.result
}

// Snippet returns the dependency snippet currently shown.
func (s *PickerScreen) Snippet() string {
	return s.display.Text()
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoicesChangedMsg:
		s.reclassify()
		return s, nil

	case DependencyResolvedMsg:
		s.lookups--
		res := msg.Resolution
		if res.Version != "" {
			s.display.Apply(res.GroupID, res.ArtifactID, res.Version)
		}
		switch {
		case res.Err != nil && res.Source == dependency.SourceCache:
			s.status = "Offline: showing cached version"
		case res.Err != nil:
			s.status = "Version lookup failed: " + res.Err.Error()
		default:
			s.status = ""
		}
		return s, nil

	case eventRecordedMsg:
		if msg.Err != nil {
			s.status = "Could not save: " + msg.Err.Error()
		} else {
			s.status = "Saved " + msg.Structure.Label()
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Record):
			return s, s.recordCmd()
		case key.Matches(msg, s.keys.Refresh):
			return s, s.lookupCmd()
		case key.Matches(msg, s.keys.MIME):
			s.showMIME = !s.showMIME
			return s, nil
		case key.Matches(msg, s.keys.History):
			if s.deps.Events == nil {
				s.status = "History is not available"
				return s, nil
			}
			return s, router.Push(history.New(s.deps.Events))
		case key.Matches(msg, s.keys.Inspect):
			return s, router.Push(inspect.New(s.deps.Events))
		}
	}

	var cmd tea.Cmd
	s.checklist, cmd = s.checklist.Update(msg)
	return s, cmd
}

func (s *PickerScreen) reclassify() {
	// The default strategies cover every feature set.
	s.result = mimestruct.MustDetermine(s.checklist.Choices.Features())
}

func (s *PickerScreen) lookupCmd() tea.Cmd {
	if s.deps.Dependency == nil {
		return nil
	}
	s.lookups++
	svc := s.deps.Dependency
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		return DependencyResolvedMsg{Resolution: svc.Resolve(ctx)}
	}
}

func (s *PickerScreen) recordCmd() tea.Cmd {
	if s.deps.Events == nil {
		return nil
	}
	repo := s.deps.Events
	f := s.checklist.Choices.Features()
	structure := s.result.Structure
	return func() tea.Msg {
		_, err := repo.Append(context.Background(), store.Event{
			Features:  f,
			Structure: structure,
			Source:    store.SourceTUI,
		})
		return eventRecordedMsg{Structure: structure, Err: err}
	}
}

func (s *PickerScreen) View(width, height int) string {
	left := lipgloss.NewStyle().Width(40).Render(
		theme.Title.Render("Your email contains") + "\n\n" + s.checklist.View())

	var preview string
	if s.showMIME {
		preview = s.mimeView(height)
	} else {
		preview = theme.Title.Render(s.result.Structure.Label()) + "\n\n" + components.StructureTree(s.result)
	}

	var top string
	if layout.IsCompactWidth(width) {
		top = left + "\n" + preview
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", preview)
	}

	snippet := s.display.Text()
	if s.lookups > 0 {
		snippet += "\n" + theme.Hint.Render("looking up latest version...")
	}
	dep := theme.Card.Render(theme.Code.Render(snippet))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(top)
	b.WriteString("\n\n")
	b.WriteString(dep)
	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.status))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *PickerScreen) mimeView(height int) string {
	raw, err := render.MIME(s.result)
	if err != nil {
		return theme.Bad.Render(fmt.Sprintf("render MIME: %v", err))
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	limit := max(height-12, 5)
	if len(lines) > limit {
		lines = append(lines[:limit], "...")
	}
	return theme.Code.Render(strings.Join(lines, "\n"))
}
