package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) Append(ctx context.Context, e Event) (Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableEvents).
		Columns("id", "created_at", "features", "structure", "source").
		Values(e.ID, e.CreatedAt.UnixNano(), int64(e.Features.Bits()), string(e.Structure), e.Source).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return Event{}, fmt.Errorf("append event: %w", err)
	}
	return e, nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "created_at", "features", "structure", "source").
		From(entsql.Table(tableEvents)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e         Event
			createdAt int64
			bits      int64
			structure string
		)
		if err := rows.Scan(&e.ID, &createdAt, &bits, &structure, &e.Source); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt)
		e.Features = mimestruct.FeaturesFromBits(uint8(bits))
		e.Structure = mimestruct.Structure(structure)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) CountByStructure(ctx context.Context) ([]StructureCount, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("structure", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(tableEvents)).
		GroupBy("structure").
		OrderBy(entsql.Desc("n"), "structure").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	var counts []StructureCount
	for rows.Next() {
		var (
			structure string
			n         int
		)
		if err := rows.Scan(&structure, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, StructureCount{Structure: mimestruct.Structure(structure), Count: n})
	}
	return counts, rows.Err()
}
