package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

var monthNames = [...]string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

// MonthName is the upper-case Spanish month name.
func MonthName(m time.Month) string { return monthNames[m-1] }

const maxDots = 3

// Render writes the grid as a seven-column table. Today is highlighted,
// other-month days are dimmed and each entry adds a dot, up to three.
func Render(w io.Writer, v *View) {
	title := color.New(color.Bold, color.FgHiYellow)
	_, _ = title.Fprintf(w, "%s %d\n", MonthName(v.Month()), v.Year())

	head := color.New(color.Faint)
	for _, d := range []string{"D", "L", "M", "M", "J", "V", "S"} {
		_, _ = head.Fprintf(w, " %-6s", d)
	}
	_, _ = fmt.Fprintln(w)

	today := color.New(color.Bold, color.FgBlack, color.BgHiYellow)
	other := color.New(color.Faint)
	plain := color.New()
	dots := color.New(color.FgHiRed)

	for i, c := range v.Cells() {
		style := plain
		switch {
		case c.IsToday:
			style = today
		case !c.IsCurrentMonth:
			style = other
		}
		_, _ = style.Fprintf(w, " %2d", c.Day())
		n := c.WodCount
		if n > maxDots {
			n = maxDots
		}
		_, _ = dots.Fprint(w, strings.Repeat("•", n))
		_, _ = fmt.Fprint(w, strings.Repeat(" ", 4-n))
		if i%7 == 6 {
			_, _ = fmt.Fprintln(w)
		}
	}
}
