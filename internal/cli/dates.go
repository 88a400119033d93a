package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// parseDate accepts "hoy"/"today", "2006-01-02" and "02/01/2006".
func parseDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hoy", "today":
		return model.FormatDate(now), nil
	case "mañana", "tomorrow":
		return model.FormatDate(now.AddDate(0, 0, 1)), nil
	case "ayer", "yesterday":
		return model.FormatDate(now.AddDate(0, 0, -1)), nil
	}
	if d, err := model.ParseDate(s); err == nil {
		return model.FormatDate(d), nil
	}
	if d, err := time.ParseInLocation("02/01/2006", s, time.Local); err == nil {
		return model.FormatDate(d), nil
	}
	return "", fmt.Errorf("%w: fecha %q (usa AAAA-MM-DD o DD/MM/AAAA)", errs.ErrInvalidArgument, s)
}

// parseMonth accepts "2006-01" and "01/2006".
func parseMonth(s string, now time.Time) (time.Month, int, error) {
	if s == "" {
		return now.Month(), now.Year(), nil
	}
	for _, layout := range []string{"2006-01", "01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Month(), t.Year(), nil
		}
	}
	return 0, 0, fmt.Errorf("%w: mes %q (usa AAAA-MM)", errs.ErrInvalidArgument, s)
}

// parseSection splits "TÍTULO=contenido". A literal \n in the content is a line break.
func parseSection(s string) (title, content string, err error) {
	title, content, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: sección %q (usa TÍTULO=contenido)", errs.ErrInvalidArgument, s)
	}
	return strings.TrimSpace(title), strings.ReplaceAll(content, `\n`, "\n"), nil
}
