package dependency

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/mavensearch"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

// Source tells where a resolved version came from.
type Source string

const (
	SourceLive  Source = "maven-central"
	SourceCache Source = "cache"
	SourceNone  Source = "none"
)

// VersionLookup finds the latest published version of an artifact.
type VersionLookup interface {
	LatestVersion(ctx context.Context, groupID, artifactID string) (string, error)
}

// Resolution is the outcome of a version lookup. Err is set when the live
// lookup failed, even if a cached version was found.
type Resolution struct {
	GroupID    string
	ArtifactID string
	Version    string
	Source     Source
	FetchedAt  time.Time
	Err        error
}

// Snippet renders the dependency declaration, with the placeholder version
// when nothing was resolved.
func (r Resolution) Snippet() string {
	return mavensearch.Snippet(r.GroupID, r.ArtifactID, r.Version)
}

// Service resolves the version shown in the dependency snippet. Live
// results are written to the cache; the cache answers when the search
// API is unreachable.
type Service struct {
	lookup     VersionLookup
	cache      store.VersionRepo
	groupID    string
	artifactID string
	logger     *zap.Logger
}

// NewService creates a Service. cache may be nil.
func NewService(lookup VersionLookup, cache store.VersionRepo, groupID, artifactID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lookup:     lookup,
		cache:      cache,
		groupID:    groupID,
		artifactID: artifactID,
		logger:     logger,
	}
}

// Coordinates returns the configured group and artifact ids.
func (s *Service) Coordinates() (groupID, artifactID string) {
	return s.groupID, s.artifactID
}

// Resolve looks up the latest version, falling back to the cache.
func (s *Service) Resolve(ctx context.Context) Resolution {
	res := Resolution{GroupID: s.groupID, ArtifactID: s.artifactID, Source: SourceNone}

	version, err := s.lookup.LatestVersion(ctx, s.groupID, s.artifactID)
	if err == nil {
		res.Version = version
		res.Source = SourceLive
		res.FetchedAt = time.Now()
		s.save(ctx, res)
		return res
	}
	res.Err = err
	s.logger.Warn("latest version lookup failed", zap.Error(err))

	if s.cache == nil {
		return res
	}
	rec, cerr := s.cache.Latest(ctx, s.groupID, s.artifactID)
	switch {
	case cerr == nil:
		res.Version = rec.Version
		res.Source = SourceCache
		res.FetchedAt = rec.FetchedAt
	case !errors.Is(cerr, store.ErrNotFound):
		s.logger.Warn("read cached version", zap.Error(cerr))
	}
	return res
}

// ResolveAsync runs Resolve in the background and passes the result to cb.
func (s *Service) ResolveAsync(ctx context.Context, cb func(Resolution)) {
	go func() {
		cb(s.Resolve(ctx))
	}()
}

// Cached returns the cached version without going to the network.
func (s *Service) Cached(ctx context.Context) Resolution {
	res := Resolution{GroupID: s.groupID, ArtifactID: s.artifactID, Source: SourceNone}
	if s.cache == nil {
		return res
	}
	rec, err := s.cache.Latest(ctx, s.groupID, s.artifactID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			res.Err = err
		}
		return res
	}
	res.Version = rec.Version
	res.Source = SourceCache
	res.FetchedAt = rec.FetchedAt
	return res
}

func (s *Service) save(ctx context.Context, res Resolution) {
	if s.cache == nil {
		return
	}
	err := s.cache.Save(ctx, store.VersionRecord{
		GroupID:    res.GroupID,
		ArtifactID: res.ArtifactID,
		Version:    res.Version,
		FetchedAt:  res.FetchedAt,
	})
	if err != nil {
		s.logger.Warn("cache latest version", zap.Error(err))
	}
}
