package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableEvents   = "classification_events"
	tableVersions = "dependency_versions"
)

// Timestamps are stored as unix nanoseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS classification_events (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		features INTEGER NOT NULL,
		structure TEXT NOT NULL,
		source TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS classification_events_created_at ON classification_events (created_at)`,
	`CREATE TABLE IF NOT EXISTS dependency_versions (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		artifact_id TEXT NOT NULL,
		version TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS dependency_versions_coordinates ON dependency_versions (group_id, artifact_id, fetched_at)`,
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
