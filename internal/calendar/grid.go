// Package calendar derives the month grid shown by the calendar view.
package calendar

import (
	"time"

	"github.com/and161185/wodcal/internal/model"
)

// GridCells is the fixed size of a month grid: five Sunday-first weeks.
const GridCells = 35

// DayCell is one square of the month grid.
type DayCell struct {
	Date           time.Time // noon, local zone
	ISO            string    // "2006-01-02"
	IsCurrentMonth bool
	IsToday        bool
	WodCount       int
}

// Day is the day of month of the cell.
func (c DayCell) Day() int { return c.Date.Day() }

// Grid derives the cells for month/year. Leading cells come from the previous
// month and trailing ones from the next month, neither counts entries. The
// grid always has GridCells cells: months that would need a sixth week lose
// their last days.
func Grid(month time.Month, year int, entries []model.Entry, today time.Time) []DayCell {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Date]++
	}

	first := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	lead := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 12, 0, 0, 0, time.Local).Day()
	ty, tm, td := today.Date()

	cells := make([]DayCell, 0, GridCells)
	for i := lead; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		cells = append(cells, DayCell{Date: d, ISO: model.FormatDate(d)})
	}
	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(year, month, day, 12, 0, 0, 0, time.Local)
		iso := model.FormatDate(d)
		cells = append(cells, DayCell{
			Date:           d,
			ISO:            iso,
			IsCurrentMonth: true,
			IsToday:        year == ty && month == tm && day == td,
			WodCount:       counts[iso],
		})
	}
	next := time.Date(year, month+1, 1, 12, 0, 0, 0, time.Local)
	for i := 0; len(cells) < GridCells; i++ {
		d := next.AddDate(0, 0, i)
		cells = append(cells, DayCell{Date: d, ISO: model.FormatDate(d)})
	}
	if len(cells) > GridCells {
		cells = cells[:GridCells]
	}
	return cells
}
