package store

import (
	"context"
	"sync"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// Blob is the single-array entry storage behind Local.
// Implemented by *localstate.State.
type Blob interface {
	Entries() ([]model.Entry, error)
	SetEntries([]model.Entry) error
}

// Local keeps all entries as one JSON array in array order.
type Local struct {
	mu   sync.Mutex
	blob Blob
}

// NewLocal returns a Local backend over blob.
func NewLocal(blob Blob) *Local { return &Local{blob: blob} }

func (l *Local) List(context.Context) ([]model.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blob.Entries()
}

func (l *Local) ListByDate(_ context.Context, date string) ([]model.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all, err := l.blob.Entries()
	if err != nil {
		return nil, err
	}
	out := make([]model.Entry, 0, 4)
	for _, e := range all {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *Local) Get(_ context.Context, id string) (model.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all, err := l.blob.Entries()
	if err != nil {
		return model.Entry{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Entry{}, errs.ErrNotFound
}

// Put replaces the entry with the same id in place, or appends it.
func (l *Local) Put(_ context.Context, e model.Entry) (model.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	all, err := l.blob.Entries()
	if err != nil {
		return model.Entry{}, err
	}
	replaced := false
	for i := range all {
		if all[i].ID == e.ID {
			all[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, e)
	}
	if err := l.blob.SetEntries(all); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

func (l *Local) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	all, err := l.blob.Entries()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return l.blob.SetEntries(kept)
}
