package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/config"
	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

type stubLookup struct {
	version string
	err     error
}

func (s stubLookup) LatestVersion(context.Context, string, string) (string, error) {
	return s.version, s.err
}

func newTestServer(t *testing.T, lookup dependency.VersionLookup) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	deps := dependency.NewService(lookup, st.VersionRepo(), "org.simplejavamail", "simple-java-mail", zap.NewNop())
	srv := New(config.Server{ListenAddress: "127.0.0.1:0"}, deps, st.EventRepo(), zap.NewNop())

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func TestStructureAPI(t *testing.T) {
	ts, st := newTestServer(t, stubLookup{version: "8.12.2"})

	resp, err := http.Get(ts.URL + "/api/structure?html&embedded&forward")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc render.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, mimestruct.StructureMixedRelated, doc.Structure)

	events, err := st.EventRepo().Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.SourceHTTP, events[0].Source)
}

func TestStructureAPI_EmbeddedWithoutHTML(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{version: "8.12.2"})

	resp, err := http.Get(ts.URL + "/api/structure?plain&embedded")
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc render.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, mimestruct.StructureSimple, doc.Structure)
}

func TestDependencyAPI(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{version: "8.12.2"})

	resp, err := http.Get(ts.URL + "/api/dependency")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dependencyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "8.12.2", body.Version)
	assert.Equal(t, "maven-central", body.Source)
	assert.Contains(t, body.Snippet, "<artifactId>simple-java-mail</artifactId>")
}

func TestDependencyAPI_Unavailable(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{err: errors.New("offline")})

	resp, err := http.Get(ts.URL + "/api/dependency")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body dependencyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "offline", body.Error)
	assert.Contains(t, body.Snippet, "<version>...</version>")
}

func TestPage(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{version: "8.12.2"})

	resp, err := http.Get(ts.URL + "/?plain&html&attachments")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(data)
	// html/template escapes "+" in text.
	assert.Contains(t, page, "Mixed &#43; Alternative")
	assert.Contains(t, page, `<li class="group">mixed (root)`)
	assert.Contains(t, page, `name="plain" checked`)
	assert.Contains(t, page, `name="embedded" onchange`, "embedded stays enabled while HTML is checked")
	assert.NotContains(t, page, `name="embedded" disabled`)
}

func TestPage_EmbeddedWithoutHTML(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{version: "8.12.2"})

	resp, err := http.Get(ts.URL + "/?plain&embedded")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, `name="embedded" disabled`)
	assert.NotContains(t, page, `name="embedded" checked`)
	assert.Contains(t, page, `<li class="content">Plain text</li>`)
}

func TestHealthAndNotFound(t *testing.T) {
	ts, _ := newTestServer(t, stubLookup{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
