package store

import (
	"context"
	"errors"
	"time"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Event sources.
const (
	SourceCLI     = "cli"
	SourceTUI     = "tui"
	SourceHTTP    = "http"
	SourceInspect = "inspect"
)

// Event records one classification.
type Event struct {
	ID        string
	CreatedAt time.Time
	Features  mimestruct.Features
	Structure mimestruct.Structure
	Source    string
}

// StructureCount is one row of a per-structure tally.
type StructureCount struct {
	Structure mimestruct.Structure
	Count     int
}

// EventRepo stores classification history.
type EventRepo interface {
	// Append records e. ID and CreatedAt are filled in when empty.
	Append(ctx context.Context, e Event) (Event, error)

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)

	// CountByStructure tallies events per structure, most frequent first.
	CountByStructure(ctx context.Context) ([]StructureCount, error)
}

// VersionRecord is a cached dependency version lookup.
type VersionRecord struct {
	GroupID    string
	ArtifactID string
	Version    string
	FetchedAt  time.Time
}

// VersionRepo caches the latest known version of a dependency.
type VersionRepo interface {
	Save(ctx context.Context, rec VersionRecord) error

	// Latest returns the most recently fetched record for the coordinates,
	// or ErrNotFound.
	Latest(ctx context.Context, groupID, artifactID string) (VersionRecord, error)
}
