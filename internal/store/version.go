package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

type versionRepo struct {
	drv *entsql.Driver
}

func (r *versionRepo) Save(ctx context.Context, rec VersionRecord) error {
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableVersions).
		Columns("id", "group_id", "artifact_id", "version", "fetched_at").
		Values(uuid.NewString(), rec.GroupID, rec.ArtifactID, rec.Version, rec.FetchedAt.UnixNano()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save version: %w", err)
	}
	return nil
}

func (r *versionRepo) Latest(ctx context.Context, groupID, artifactID string) (VersionRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("version", "fetched_at").
		From(entsql.Table(tableVersions)).
		Where(entsql.And(
			entsql.EQ("group_id", groupID),
			entsql.EQ("artifact_id", artifactID),
		)).
		OrderBy(entsql.Desc("fetched_at"), entsql.Desc("rowid")).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return VersionRecord{}, fmt.Errorf("query version: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return VersionRecord{}, fmt.Errorf("query version: %w", err)
		}
		return VersionRecord{}, ErrNotFound
	}

	rec := VersionRecord{GroupID: groupID, ArtifactID: artifactID}
	var fetchedAt int64
	if err := rows.Scan(&rec.Version, &fetchedAt); err != nil {
		return VersionRecord{}, fmt.Errorf("scan version: %w", err)
	}
	rec.FetchedAt = time.Unix(0, fetchedAt)
	return rec, nil
}
