package inspect

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/render"
)

func typeText(s *InspectScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestInspectFile(t *testing.T) {
	raw, err := render.MIME(mimestruct.MustDetermine(mimestruct.Features{PlainText: true, EmailForward: true}))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "msg.eml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	s := New(nil)
	typeText(s, path)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	require.NotNil(t, s.Report())
	assert.Equal(t, mimestruct.StructureMixed, s.Report().Recommended.Structure)
	view := s.View(120, 40)
	assert.Contains(t, view, "layout matches")
	assert.Contains(t, view, "message/rfc822")
}

func TestInspectFile_Missing(t *testing.T) {
	s := New(nil)
	typeText(s, filepath.Join(t.TempDir(), "missing.eml"))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd, "missing file is rejected before parsing")

	assert.Nil(t, s.Report())
	assert.Contains(t, s.View(120, 40), "Error:")
}

func TestInspect_EmptyPathIgnored(t *testing.T) {
	s := New(nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}
