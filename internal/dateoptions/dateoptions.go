// Package dateoptions is the per-day view: the entries stored on one date
// and the way into the editor for each of them or for a new one.
package dateoptions

import (
	"context"
	"fmt"

	"github.com/and161185/wodcal/internal/editor"
	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// Store is the entry store as seen by the view. Implemented by *store.Store.
type Store interface {
	ListByDate(ctx context.Context, date string) []model.Entry
	Save(ctx context.Context, e model.Entry) (model.Entry, error)
	Delete(ctx context.Context, id string) error
}

// View lists the entries of the selected date.
type View struct {
	st   Store
	ai   editor.Importer
	opts []editor.Option

	date    string
	entries []model.Entry
}

// Open loads the entries of date.
func Open(ctx context.Context, st Store, ai editor.Importer, date string, opts ...editor.Option) (*View, error) {
	v := &View{st: st, ai: ai, opts: opts}
	if err := v.SetDate(ctx, date); err != nil {
		return nil, err
	}
	return v, nil
}

// Date is the selected date ("2006-01-02").
func (v *View) Date() string { return v.date }

// SetDate selects another date and re-queries its entries.
func (v *View) SetDate(ctx context.Context, date string) error {
	if _, err := model.ParseDate(date); err != nil {
		return fmt.Errorf("%w: date %q", errs.ErrInvalidArgument, date)
	}
	v.date = date
	v.Reload(ctx)
	return nil
}

// Reload re-queries the selected date, typically after an editor closed.
func (v *View) Reload(ctx context.Context) {
	v.entries = v.st.ListByDate(ctx, v.date)
}

// Entries are the rows of the view.
func (v *View) Entries() []model.Entry { return v.entries }

// NewEntry opens the editor in create mode on the selected date.
func (v *View) NewEntry() *editor.Editor {
	return editor.New(v.st, v.ai, v.date, v.opts...)
}

// EditEntry opens the editor on the listed entry with id.
func (v *View) EditEntry(id string) (*editor.Editor, error) {
	for _, e := range v.entries {
		if e.ID == id {
			return editor.Open(v.st, v.ai, e, v.opts...), nil
		}
	}
	return nil, fmt.Errorf("entry %s on %s: %w", id, v.date, errs.ErrNotFound)
}
