package app

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/router"
	"github.com/simplejavamail/rfcpicker/internal/screen"
	pickerscreen "github.com/simplejavamail/rfcpicker/internal/screens/picker"
	"github.com/simplejavamail/rfcpicker/internal/ui/layout"
)

var (
	quitKey = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	backKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

func newAppModel(deps pickerscreen.Deps, initial picker.Choices) AppModel {
	return AppModel{
		router: router.New(pickerscreen.New(deps, initial)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pickerscreen.DependencyResolvedMsg:
		if v := msg.Resolution.Version; v != "" {
			m.status = fmt.Sprintf("%s %s", msg.Resolution.ArtifactID, v)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return m, tea.Quit
		case key.Matches(msg, backKey):
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)

	var hints []key.Binding
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	if m.router.Depth() > 1 {
		hints = append(hints, backKey)
	}
	hints = append(hints, quitKey)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal picker.
func Run(deps pickerscreen.Deps, initial picker.Choices) error {
	p := tea.NewProgram(newAppModel(deps, initial))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
