package dependency

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplejavamail/rfcpicker/internal/mavensearch"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

type fakeLookup struct {
	version string
	err     error
	calls   int
}

func (f *fakeLookup) LatestVersion(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.version, f.err
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "dep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolve_LiveIsCached(t *testing.T) {
	st := openStore(t)
	svc := NewService(&fakeLookup{version: "8.12.2"}, st.VersionRepo(), "org.simplejavamail", "simple-java-mail", nil)

	res := svc.Resolve(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, SourceLive, res.Source)
	assert.Equal(t, "8.12.2", res.Version)
	assert.Contains(t, res.Snippet(), "<version>8.12.2</version>")

	cached := svc.Cached(context.Background())
	assert.Equal(t, SourceCache, cached.Source)
	assert.Equal(t, "8.12.2", cached.Version)
}

func TestResolve_FallsBackToCache(t *testing.T) {
	st := openStore(t)
	require.NoError(t, st.VersionRepo().Save(context.Background(), store.VersionRecord{
		GroupID: "org.simplejavamail", ArtifactID: "simple-java-mail", Version: "8.0.0", FetchedAt: time.Now(),
	}))

	down := errors.New("network down")
	svc := NewService(&fakeLookup{err: down}, st.VersionRepo(), "org.simplejavamail", "simple-java-mail", nil)

	res := svc.Resolve(context.Background())
	assert.ErrorIs(t, res.Err, down)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, "8.0.0", res.Version)
}

func TestResolve_NothingAvailable(t *testing.T) {
	svc := NewService(&fakeLookup{err: mavensearch.ErrNotFound}, nil, "g", "a", nil)

	res := svc.Resolve(context.Background())
	assert.ErrorIs(t, res.Err, mavensearch.ErrNotFound)
	assert.Equal(t, SourceNone, res.Source)
	assert.Contains(t, res.Snippet(), "<version>...</version>")
}

func TestResolveAsync(t *testing.T) {
	svc := NewService(&fakeLookup{version: "1.2.3"}, nil, "g", "a", nil)

	done := make(chan Resolution, 1)
	svc.ResolveAsync(context.Background(), func(r Resolution) { done <- r })

	select {
	case r := <-done:
		assert.Equal(t, "1.2.3", r.Version)
	case <-time.After(2 * time.Second):
		t.Fatal("callback not invoked")
	}
}
