package picker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/router"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

type stubLookup struct {
	version string
	err     error
}

func (s stubLookup) LatestVersion(context.Context, string, string) (string, error) {
	return s.version, s.err
}

// send delivers msg and then any message produced by the returned command.
func send(t *testing.T, s *PickerScreen, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if out != nil {
		s.Update(out)
	}
	return out
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestToggleReclassifies(t *testing.T) {
	s := New(Deps{}, picker.Choices{})
	assert.Equal(t, mimestruct.StructureSimple, s.Result().Structure)

	send(t, s, press('x')) // plain text
	send(t, s, press('j'))
	send(t, s, press('x')) // HTML text
	assert.Equal(t, mimestruct.StructureAlternative, s.Result().Structure)

	send(t, s, press('j'))
	send(t, s, press('x')) // embedded images
	assert.Equal(t, mimestruct.StructureRelatedAlternative, s.Result().Structure)

	// Unchecking HTML also drops embedded content.
	send(t, s, press('k'))
	send(t, s, press('x'))
	assert.Equal(t, mimestruct.StructureSimple, s.Result().Structure)
}

func TestDependencyLookup(t *testing.T) {
	svc := dependency.NewService(stubLookup{version: "8.12.2"}, nil, "org.simplejavamail", "simple-java-mail", nil)
	s := New(Deps{Dependency: svc}, picker.Choices{})
	assert.Contains(t, s.Snippet(), "<version>...</version>")

	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Contains(t, s.Snippet(), "<version>8.12.2</version>")
	assert.Contains(t, s.View(120, 40), "8.12.2")
}

func TestDependencyLookup_LastResponseWins(t *testing.T) {
	s := New(Deps{}, picker.Choices{})
	s.Update(DependencyResolvedMsg{Resolution: dependency.Resolution{GroupID: "g", ArtifactID: "a", Version: "2.0.0"}})
	s.Update(DependencyResolvedMsg{Resolution: dependency.Resolution{GroupID: "g", ArtifactID: "a", Version: "1.0.0"}})
	assert.Contains(t, s.Snippet(), "<version>1.0.0</version>")
}

func TestDependencyLookup_FailureKeepsPlaceholder(t *testing.T) {
	svc := dependency.NewService(stubLookup{err: errors.New("offline")}, nil, "g", "a", nil)
	s := New(Deps{Dependency: svc}, picker.Choices{})
	s.Update(s.Init()())
	assert.Contains(t, s.Snippet(), "<version>...</version>")
	assert.Contains(t, s.View(120, 40), "Version lookup failed")
}

func TestRecordEvent(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "picker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(Deps{Events: st.EventRepo()}, picker.Choices{HTMLText: true, Attachments: true})
	send(t, s, tea.KeyPressMsg{Code: tea.KeyEnter})

	events, err := st.EventRepo().Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, mimestruct.StructureMixed, events[0].Structure)
	assert.Equal(t, store.SourceTUI, events[0].Source)
	assert.Contains(t, s.View(120, 40), "Saved Mixed")
}

func TestNavigation(t *testing.T) {
	s := New(Deps{}, picker.Choices{})

	_, cmd := s.Update(press('i'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Inspect message", push.Screen.Title())

	_, cmd = s.Update(press('h'))
	assert.Nil(t, cmd, "history needs a store")
}

func TestMIMEView(t *testing.T) {
	s := New(Deps{}, picker.Choices{PlainText: true, Attachments: true})
	s.Update(press('m'))
	view := s.View(120, 60)
	assert.Contains(t, view, "multipart/mixed")
	assert.Contains(t, view, "rfcpicker-0")
}
