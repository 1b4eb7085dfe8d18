package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/router"
	"github.com/simplejavamail/rfcpicker/internal/screen"
	"github.com/simplejavamail/rfcpicker/internal/store"
	"github.com/simplejavamail/rfcpicker/internal/ui/components"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Events []store.Event
	Counts []store.StructureCount
	Err    error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Back   key.Binding
}

// HistoryScreen lists past classifications.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.Event
	counts    []store.StructureCount
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
	keys      keyMap
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
		keys: keyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Expand: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		},
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.Recent(ctx, pageSize)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		counts, err := repo.CountByStructure(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Counts: counts}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []key.Binding {
	return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Expand, s.keys.Back}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.counts = msg.Counts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return s, router.Pop
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Expand):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing saved yet. Press enter on the picker to save a structure.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.summary())
	b.WriteString("\n\n")

	for i, e := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-14s  %-30s  %s", prefix,
			humanize.Time(e.CreatedAt), e.Structure.Label(), e.Source)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(indent(theme.Hint.Render(e.Features.String()), "    "))
			b.WriteString("\n")
			r := mimestruct.MustDetermine(e.Features)
			b.WriteString(indent(components.StructureTree(r), "    "))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *HistoryScreen) summary() string {
	parts := make([]string, 0, len(s.counts))
	for _, c := range s.counts {
		parts = append(parts, fmt.Sprintf("%s ×%d", c.Structure.Label(), c.Count))
	}
	return theme.Title.Render("Most used: ") + theme.Body.Render(strings.Join(parts, ", "))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
