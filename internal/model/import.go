package model

import (
	"fmt"
	"strings"

	"github.com/and161185/wodcal/internal/errs"
)

// DefaultSectionTitle replaces blank section titles proposed by the AI import.
const DefaultSectionTitle = "Sección"

// Normalize checks r against the import schema and fills defaults.
// A missing sections list is rejected; an empty one is accepted.
func (r ImportResult) Normalize() (ImportResult, error) {
	if r.Sections == nil {
		return ImportResult{}, fmt.Errorf("%w: missing sections", errs.ErrInvalidImport)
	}
	out := ImportResult{
		Title:    strings.TrimSpace(r.Title),
		Sections: make([]ImportSection, 0, len(r.Sections)),
	}
	for _, s := range r.Sections {
		if strings.TrimSpace(s.Title) == "" {
			s.Title = DefaultSectionTitle
		}
		out.Sections = append(out.Sections, s)
	}
	return out, nil
}

// IsTextMedia reports whether mediaType is carried as plain text rather than
// as a base64 data URL.
func IsTextMedia(mediaType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return strings.HasPrefix(mt, "text/") || mt == "application/json"
}
