// Package model defines domain entities used by services, repositories and the client.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// DateLayout is the calendar date format of Entry.Date (no time, no zone).
const DateLayout = "2006-01-02"

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// Section is a named free-text block of an entry. Order is slice position.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Entry is one workout of the day tied to a calendar date.
type Entry struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"` // "2006-01-02"
	Title    string    `json:"title"`
	Content  string    `json:"content"` // derived from Sections, see LegacyContent
	Sections []Section `json:"sections"`

	UpdatedAt time.Time `json:"updatedAt,omitempty"` // stamped by the server
}

// User represents an account stored on the server.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique, lower-cased
	PwdHash   []byte    // Argon2id(password, SaltAuth)
	SaltAuth  []byte    // per-user auth salt
	CreatedAt time.Time
}

// ImportSection is one section proposed by the AI import collaborator.
type ImportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ImportResult is the structured answer of the AI import collaborator.
type ImportResult struct {
	Title    string          `json:"title,omitempty"`
	Sections []ImportSection `json:"sections"`
}

// FormatDate renders t as an entry date in t's own location.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// ParseDate parses an entry date in the local zone at noon, so that
// adding or subtracting days never crosses a DST boundary into another date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(12 * time.Hour), nil
}
