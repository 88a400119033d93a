// Package repository holds the storage contracts of the server; the postgres
// subpackage implements them.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/wodcal/internal/model"
)

// UserRepository stores accounts. Emails are kept lower-cased.
type UserRepository interface {
	// Create fails with errs.ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// EntryRepository stores the per-user collection of workout entries.
type EntryRepository interface {
	// List returns the user's entries ordered by date descending.
	// A non-empty date restricts the result to that exact date.
	List(ctx context.Context, userID uuid.UUID, date string) ([]model.Entry, error)

	// Get returns a single entry or errs.ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID, id string) (model.Entry, error)

	// Upsert overwrites the full entry document and returns it with the stored updated_at.
	Upsert(ctx context.Context, userID uuid.UUID, e model.Entry) (model.Entry, error)

	// Delete removes the entry; deleting a missing entry is not an error.
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}
