package components

import (
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathInput_Check(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.eml")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	p := NewPathInput("")
	p.Model.SetValue("  " + file + " ")
	assert.Equal(t, file, p.Path())
	assert.NoError(t, p.Check())
	assert.Contains(t, p.View(), "✓")

	p.Model.SetValue(dir)
	assert.Error(t, p.Check(), "directories are rejected")
	assert.Contains(t, p.View(), "✗")

	p.Model.SetValue("")
	assert.Error(t, p.Check())
}

func TestPathInput_EditClearsCheck(t *testing.T) {
	p := NewPathInput("")
	require.Error(t, p.Check())

	p, _ = p.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.NotContains(t, p.View(), "✗")
}

func TestPathInput_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	p := NewPathInput("")
	p.Model.SetValue("~/mail/a.eml")
	assert.Equal(t, filepath.Join(home, "mail", "a.eml"), p.Path())
}
