package model

import "strings"

// LegacySectionTitle is the section title used when wrapping pre-sections content.
const LegacySectionTitle = "WOD"

// LegacyContent flattens sections into the plain-text content field.
// The field is a denormalized copy kept for historical readers and is
// recomputed on every save; it is never edited directly.
func LegacyContent(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, "### "+s.Title+"\n"+s.Content)
	}
	return strings.Join(parts, "\n\n")
}

// WithLegacyContent returns a copy of e with Content recomputed from Sections.
func (e Entry) WithLegacyContent() Entry {
	e.Sections = cloneSections(e.Sections)
	e.Content = LegacyContent(e.Sections)
	return e
}

// NeedsSectionUpgrade reports whether e predates sections: it carries text
// content but no sections, so recomputing Content would drop that text.
func (e Entry) NeedsSectionUpgrade() bool {
	return len(e.Sections) == 0 && strings.TrimSpace(e.Content) != ""
}

// UpgradeLegacy wraps pre-sections content into a single section with the
// given id. Entries that already have sections are returned unchanged.
func (e Entry) UpgradeLegacy(sectionID string) Entry {
	if !e.NeedsSectionUpgrade() {
		return e
	}
	e.Sections = []Section{{ID: sectionID, Title: LegacySectionTitle, Content: e.Content}}
	return e
}

func cloneSections(in []Section) []Section {
	if in == nil {
		return []Section{}
	}
	out := make([]Section, len(in))
	copy(out, in)
	return out
}
