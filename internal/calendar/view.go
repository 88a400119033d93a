package calendar

import (
	"context"
	"time"

	"github.com/and161185/wodcal/internal/model"
)

// Lister is the read side of the entry store. Implemented by *store.Store.
type Lister interface {
	ListAll(ctx context.Context) []model.Entry
}

// View is the calendar screen state. Every change re-derives the whole grid
// and bumps Version.
type View struct {
	month   time.Month
	year    int
	entries []model.Entry
	now     func() time.Time

	cells   []DayCell
	version int
}

// NewView opens the calendar on the current month.
func NewView(now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}
	t := now()
	v := &View{month: t.Month(), year: t.Year(), now: now}
	v.derive()
	return v
}

func (v *View) derive() {
	v.cells = Grid(v.month, v.year, v.entries, v.now())
	v.version++
}

func (v *View) Month() time.Month { return v.month }
func (v *View) Year() int         { return v.year }
func (v *View) Cells() []DayCell  { return v.cells }

// Version increases on every re-derivation.
func (v *View) Version() int { return v.version }

// SetMonth jumps to month/year.
func (v *View) SetMonth(month time.Month, year int) {
	t := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	v.month, v.year = t.Month(), t.Year()
	v.derive()
}

// Next moves to the following month.
func (v *View) Next() { v.SetMonth(v.month+1, v.year) }

// Prev moves to the previous month.
func (v *View) Prev() { v.SetMonth(v.month-1, v.year) }

// SetEntries replaces the entries the counts are derived from.
func (v *View) SetEntries(entries []model.Entry) {
	v.entries = entries
	v.derive()
}

// Refresh reloads entries from l.
func (v *View) Refresh(ctx context.Context, l Lister) {
	v.SetEntries(l.ListAll(ctx))
}

// Select returns the cell of date, if it is on the grid.
func (v *View) Select(date string) (DayCell, bool) {
	for _, c := range v.cells {
		if c.ISO == date {
			return c, true
		}
	}
	return DayCell{}, false
}
