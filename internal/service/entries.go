package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
	"github.com/and161185/wodcal/internal/repository"
)

// EntryService defines the per-user entry collection operations.
type EntryService interface {
	// ListAll returns every entry of the user, newest date first.
	ListAll(ctx context.Context, userID uuid.UUID) ([]model.Entry, error)
	// ListByDate returns the entries whose date equals date exactly.
	ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]model.Entry, error)
	// Get returns a single entry by ID.
	Get(ctx context.Context, userID uuid.UUID, id string) (model.Entry, error)
	// Save creates or fully overwrites an entry and returns the stored version.
	Save(ctx context.Context, userID uuid.UUID, e model.Entry) (model.Entry, error)
	// Delete removes an entry; missing entries are not an error.
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type EntryServiceImpl struct {
	repo repository.EntryRepository
}

// NewEntryService constructs EntryService over a repository.
func NewEntryService(repo repository.EntryRepository) *EntryServiceImpl {
	return &EntryServiceImpl{repo: repo}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errs.ErrInvalidArgument}, args...)...)
}

// ListAll returns all entries of userID.
func (s *EntryServiceImpl) ListAll(ctx context.Context, userID uuid.UUID) ([]model.Entry, error) {
	if userID == uuid.Nil {
		return nil, invalid("empty userID")
	}
	return s.repo.List(ctx, userID, "")
}

// ListByDate returns entries of userID on date.
func (s *EntryServiceImpl) ListByDate(ctx context.Context, userID uuid.UUID, date string) ([]model.Entry, error) {
	if userID == uuid.Nil {
		return nil, invalid("empty userID")
	}
	if date == "" {
		return nil, invalid("empty date")
	}
	return s.repo.List(ctx, userID, date)
}

// Get returns one entry or errs.ErrNotFound.
func (s *EntryServiceImpl) Get(ctx context.Context, userID uuid.UUID, id string) (model.Entry, error) {
	if userID == uuid.Nil {
		return model.Entry{}, invalid("empty userID")
	}
	if id == "" {
		return model.Entry{}, invalid("empty id")
	}
	return s.repo.Get(ctx, userID, id)
}

// Save assigns missing entry and section ids, recomputes the legacy content
// field and overwrites the stored document.
func (s *EntryServiceImpl) Save(ctx context.Context, userID uuid.UUID, e model.Entry) (model.Entry, error) {
	if userID == uuid.Nil {
		return model.Entry{}, invalid("empty userID")
	}
	if strings.TrimSpace(e.Date) == "" {
		return model.Entry{}, invalid("entry %q: empty date", e.ID)
	}
	if e.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return model.Entry{}, err
		}
		e.ID = id.String()
	}
	e = e.WithLegacyContent()
	for i := range e.Sections {
		if e.Sections[i].ID != "" {
			continue
		}
		id, err := uuid.NewV4()
		if err != nil {
			return model.Entry{}, err
		}
		e.Sections[i].ID = id.String()
	}
	return s.repo.Upsert(ctx, userID, e)
}

// Delete removes entry id of userID.
func (s *EntryServiceImpl) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	if userID == uuid.Nil {
		return invalid("empty userID")
	}
	if id == "" {
		return invalid("empty id")
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}
