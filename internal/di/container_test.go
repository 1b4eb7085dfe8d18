package di

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplejavamail/rfcpicker/internal/config"
	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/server"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

func TestBuildContainer_ResolvesServer(t *testing.T) {
	t.Setenv("RFCPICKER_LOGGING_LEVEL", "error")
	dbPath := filepath.Join(t.TempDir(), "nested", "di.db")

	c, err := BuildContainer(Options{DBPath: dbPath})
	require.NoError(t, err)

	err = c.Invoke(func(s *server.Server, deps *dependency.Service, st *store.Store) {
		assert.NotNil(t, s)
		g, a := deps.Coordinates()
		assert.Equal(t, "org.simplejavamail", g)
		assert.Equal(t, "simple-java-mail", a)
		assert.NoError(t, st.Close())
	})
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func TestBuildContainer_BadConfigFile(t *testing.T) {
	c, err := BuildContainer(Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)

	err = c.Invoke(func(s *server.Server) {})
	assert.Error(t, err)
}

func TestBuildContainer_ListenOverride(t *testing.T) {
	c, err := BuildContainer(Options{
		DBPath:        filepath.Join(t.TempDir(), "di.db"),
		ListenAddress: "127.0.0.1:9191",
	})
	require.NoError(t, err)

	err = c.Invoke(func(s config.Server) {
		assert.Equal(t, "127.0.0.1:9191", s.ListenAddress)
	})
	require.NoError(t, err)
}
