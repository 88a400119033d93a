// Package store is the entry persistence contract used by every client view.
//
// Reads never fail: a backend fault is logged and yields an empty result, so
// views render "nothing here" instead of an error. Writes propagate faults so
// the editor can keep the user's changes and show a notice.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// Backend is an error-returning entry collection for a single user scope.
// Get reports a missing entry as errs.ErrNotFound.
type Backend interface {
	List(ctx context.Context) ([]model.Entry, error)
	ListByDate(ctx context.Context, date string) ([]model.Entry, error)
	Get(ctx context.Context, id string) (model.Entry, error)
	Put(ctx context.Context, e model.Entry) (model.Entry, error)
	Delete(ctx context.Context, id string) error
}

// Store wraps a Backend with the fail-soft read contract.
type Store struct {
	b   Backend
	log *zap.Logger
}

// New returns a Store over b. A nil logger discards read faults.
func New(b Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{b: b, log: log}
}

// ListAll returns every entry of the current scope, or an empty slice on fault.
func (s *Store) ListAll(ctx context.Context) []model.Entry {
	out, err := s.b.List(ctx)
	if err != nil {
		s.log.Warn("list entries failed", zap.Error(err))
		return []model.Entry{}
	}
	return nonNil(out)
}

// ListByDate returns the entries whose date equals date exactly, or an empty slice on fault.
func (s *Store) ListByDate(ctx context.Context, date string) []model.Entry {
	out, err := s.b.ListByDate(ctx, date)
	if err != nil {
		s.log.Warn("list entries by date failed", zap.String("date", date), zap.Error(err))
		return []model.Entry{}
	}
	return nonNil(out)
}

// GetByID returns the entry and true, or false when it is absent or the read failed.
func (s *Store) GetByID(ctx context.Context, id string) (model.Entry, bool) {
	e, err := s.b.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("get entry failed", zap.String("id", id), zap.Error(err))
		}
		return model.Entry{}, false
	}
	return e, true
}

// Save assigns an id to new entries, recomputes the legacy content field and
// overwrites the stored document. The saved entry is returned.
func (s *Store) Save(ctx context.Context, e model.Entry) (model.Entry, error) {
	if e.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return model.Entry{}, fmt.Errorf("new entry id: %w", err)
		}
		e.ID = id.String()
	}
	saved, err := s.b.Put(ctx, e.WithLegacyContent())
	if err != nil {
		return model.Entry{}, fmt.Errorf("save entry %s: %w", e.ID, err)
	}
	return saved, nil
}

// Delete removes the entry. Deleting a missing entry succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.b.Delete(ctx, id); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}

func nonNil(in []model.Entry) []model.Entry {
	if in == nil {
		return []model.Entry{}
	}
	return in
}
