package model

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Generation records one calendar file written by CreateCalendar.
type Generation struct {
	bun.BaseModel `bun:"table:generations"`

	ID        string `bun:"id,pk"`              // required
	Path      string `bun:"path,notnull"`       // resolved output path
	Events    int    `bun:"events,notnull"`     // rendered event count
	TimeZone  string `bun:"time_zone,notnull"`  // TZID rendered into the document
	CreatedAt int64  `bun:"created_at,notnull"` // unix seconds
}

func (g *Generation) Upsert(ctx context.Context, db bun.IDB) error {
	if db == nil {
		return fmt.Errorf("(*Generation).Upsert: db is nil")
	}

	// validate
	switch {
	case g.ID == "":
		return fmt.Errorf("(*Generation).Upsert: generation id is blank")
	case g.Path == "":
		return fmt.Errorf("(*Generation).Upsert: path is blank")
	case g.CreatedAt == 0:
		return fmt.Errorf("(*Generation).Upsert: created at is required")
	}

	// upsert
	if _, err := db.NewInsert().
		Model(g).
		On("CONFLICT (id) DO UPDATE").
		Set("path = EXCLUDED.path").
		Set("events = EXCLUDED.events").
		Set("time_zone = EXCLUDED.time_zone").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Generation).Upsert: can't upsert generation: %w", err)
	}

	return nil
}

// Recent returns the newest generation records, most recent first.
func Recent(ctx context.Context, db bun.IDB, limit int) ([]Generation, error) {
	if db == nil {
		return nil, fmt.Errorf("Recent: db is nil")
	}
	if limit <= 0 {
		limit = 10
	}

	var generations []Generation
	if err := db.NewSelect().
		Model(&generations).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("Recent: can't select generations: %w", err)
	}
	return generations, nil
}
