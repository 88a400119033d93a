package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// EntryRepo implements EntryRepository using PostgreSQL.
// Sections are stored as a JSONB array in slice order.
type EntryRepo struct{ db *DB }

// NewEntryRepo constructs an entry repository.
func NewEntryRepo(db *DB) *EntryRepo { return &EntryRepo{db: db} }

const entryCols = `id, date, title, content, sections, updated_at`

// List returns the user's entries, newest date first.
func (r *EntryRepo) List(ctx context.Context, userID uuid.UUID, date string) ([]model.Entry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if date == "" {
		const q = `SELECT ` + entryCols + ` FROM wods WHERE user_id=$1 ORDER BY date DESC, updated_at DESC`
		rows, err = r.db.Pool.Query(ctx, q, userID)
	} else {
		const q = `SELECT ` + entryCols + ` FROM wods WHERE user_id=$1 AND date=$2 ORDER BY updated_at DESC`
		rows, err = r.db.Pool.Query(ctx, q, userID, date)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Entry, 0, 16)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns a single entry by id.
func (r *EntryRepo) Get(ctx context.Context, userID uuid.UUID, id string) (model.Entry, error) {
	const q = `SELECT ` + entryCols + ` FROM wods WHERE user_id=$1 AND id=$2`
	e, err := scanEntry(r.db.Pool.QueryRow(ctx, q, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Entry{}, errs.ErrNotFound
	}
	return e, err
}

// Upsert writes the whole entry, replacing any previous version (last writer wins).
func (r *EntryRepo) Upsert(ctx context.Context, userID uuid.UUID, e model.Entry) (model.Entry, error) {
	secs := e.Sections
	if secs == nil {
		secs = []model.Section{}
	}
	raw, err := json.Marshal(secs)
	if err != nil {
		return model.Entry{}, fmt.Errorf("encode sections: %w", err)
	}

	const q = `
INSERT INTO wods (user_id, id, date, title, content, sections, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (user_id, id) DO UPDATE
SET date=EXCLUDED.date, title=EXCLUDED.title, content=EXCLUDED.content,
    sections=EXCLUDED.sections, updated_at=now()
RETURNING updated_at`
	var ts time.Time
	if err := r.db.Pool.QueryRow(ctx, q, userID, e.ID, e.Date, e.Title, e.Content, raw).Scan(&ts); err != nil {
		return model.Entry{}, err
	}
	e.Sections = secs
	e.UpdatedAt = ts
	return e, nil
}

// Delete removes an entry. Missing rows are ignored.
func (r *EntryRepo) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	const q = `DELETE FROM wods WHERE user_id=$1 AND id=$2`
	_, err := r.db.Pool.Exec(ctx, q, userID, id)
	return err
}

func scanEntry(row pgx.Row) (model.Entry, error) {
	var (
		e   model.Entry
		raw []byte
	)
	if err := row.Scan(&e.ID, &e.Date, &e.Title, &e.Content, &raw, &e.UpdatedAt); err != nil {
		return model.Entry{}, err
	}
	e.Sections = []model.Section{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e.Sections); err != nil {
			return model.Entry{}, fmt.Errorf("decode sections of %q: %w", e.ID, err)
		}
	}
	return e, nil
}
