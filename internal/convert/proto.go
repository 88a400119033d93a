// Package convert maps domain models to wodv1 wire messages and back.
package convert

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/model"
)

// --- helpers ---

func ts(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func fromTS(t *timestamppb.Timestamp) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.AsTime()
}

// --- Sections ---

// ToWireSections converts domain sections to wire sections.
func ToWireSections(in []model.Section) []*wodv1.Section {
	out := make([]*wodv1.Section, 0, len(in))
	for _, s := range in {
		out = append(out, &wodv1.Section{ID: s.ID, Title: s.Title, Content: s.Content})
	}
	return out
}

// FromWireSections converts wire sections to domain sections; nil items are skipped.
func FromWireSections(in []*wodv1.Section) []model.Section {
	out := make([]model.Section, 0, len(in))
	for _, s := range in {
		if s == nil {
			continue
		}
		out = append(out, model.Section{ID: s.ID, Title: s.Title, Content: s.Content})
	}
	return out
}

// --- Entries ---

// ToWireEntry converts a domain entry to its wire form.
func ToWireEntry(e model.Entry) *wodv1.Entry {
	return &wodv1.Entry{
		ID:        e.ID,
		Date:      e.Date,
		Title:     e.Title,
		Content:   e.Content,
		Sections:  ToWireSections(e.Sections),
		UpdatedAt: ts(e.UpdatedAt),
	}
}

// FromWireEntry converts a wire entry to the domain form. A nil entry gives the zero Entry.
func FromWireEntry(in *wodv1.Entry) model.Entry {
	if in == nil {
		return model.Entry{}
	}
	return model.Entry{
		ID:        in.ID,
		Date:      in.Date,
		Title:     in.Title,
		Content:   in.Content,
		Sections:  FromWireSections(in.GetSections()),
		UpdatedAt: fromTS(in.GetUpdatedAt()),
	}
}

// ToWireEntries converts a slice of entries.
func ToWireEntries(in []model.Entry) []*wodv1.Entry {
	out := make([]*wodv1.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, ToWireEntry(e))
	}
	return out
}

// FromWireEntries converts a slice of wire entries; nil items are skipped.
func FromWireEntries(in []*wodv1.Entry) []model.Entry {
	out := make([]model.Entry, 0, len(in))
	for _, e := range in {
		if e == nil {
			continue
		}
		out = append(out, FromWireEntry(e))
	}
	return out
}

// --- AI import ---

// ToWireImport converts an import result to a ParseContent response.
func ToWireImport(r model.ImportResult) *wodv1.ParseContentResponse {
	secs := make([]*wodv1.ImportSection, 0, len(r.Sections))
	for _, s := range r.Sections {
		secs = append(secs, &wodv1.ImportSection{Title: s.Title, Content: s.Content})
	}
	return &wodv1.ParseContentResponse{Title: r.Title, Sections: secs}
}

// FromWireImport converts a ParseContent response. A missing sections list
// stays nil so callers can tell it apart from an empty one.
func FromWireImport(in *wodv1.ParseContentResponse) model.ImportResult {
	res := model.ImportResult{Title: in.GetTitle()}
	if in.GetSections() == nil {
		return res
	}
	res.Sections = make([]model.ImportSection, 0, len(in.GetSections()))
	for _, s := range in.GetSections() {
		if s == nil {
			continue
		}
		res.Sections = append(res.Sections, model.ImportSection{Title: s.Title, Content: s.Content})
	}
	return res
}

// --- Login ---

// ToWireLogin builds a Login response from issued tokens and the user.
func ToWireLogin(tok model.Tokens, u model.User) *wodv1.LoginResponse {
	return &wodv1.LoginResponse{
		AccessToken: tok.AccessToken,
		ExpiresAt:   ts(tok.ExpiresAt),
		UserID:      u.ID.String(),
		Email:       u.Email,
	}
}

// FromWireLoginExpiry extracts the token expiry of a Login response.
func FromWireLoginExpiry(in *wodv1.LoginResponse) time.Time {
	return fromTS(in.GetExpiresAt())
}
