// Package localstate keeps the CLI's on-disk state in a diskv directory:
// the legacy entry blob, the migration marker and the signed-in session.
package localstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/and161185/wodcal/internal/model"
)

// Keys of the state directory.
const (
	KeyEntries  = "wods"
	KeyMigrated = "migration_complete"
	KeySession  = "session"
)

// Session is the persisted sign-in of the current user.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether s carries a token that has not expired at now.
func (s Session) Valid(now time.Time) bool {
	return s.Token != "" && (s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt))
}

// State is a flat key/value directory.
type State struct {
	d *diskv.Diskv
}

// Open returns the state stored under dir, creating it on first write.
func Open(dir string) *State {
	return &State{d: diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024,
		PathPerm:     0o700,
		FilePerm:     0o600,
	})}
}

// Dir is the base directory of the state.
func (s *State) Dir() string { return s.d.BasePath }

func (s *State) readJSON(key string, v any) (bool, error) {
	if !s.d.Has(key) {
		return false, nil
	}
	raw, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *State) writeJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, raw)
}

func (s *State) erase(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// Entries returns the legacy entry blob. A missing blob is an empty list.
func (s *State) Entries() ([]model.Entry, error) {
	var out []model.Entry
	if _, err := s.readJSON(KeyEntries, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetEntries replaces the legacy entry blob.
func (s *State) SetEntries(entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	return s.writeJSON(KeyEntries, entries)
}

// Migrated reports whether the migration marker is set.
func (s *State) Migrated() (bool, error) {
	var v bool
	ok, err := s.readJSON(KeyMigrated, &v)
	return ok && v, err
}

// MarkMigrated sets the migration marker.
func (s *State) MarkMigrated() error { return s.writeJSON(KeyMigrated, true) }

// ResetMigrated clears the migration marker.
func (s *State) ResetMigrated() error { return s.erase(KeyMigrated) }

// Session returns the stored session, if any.
func (s *State) Session() (Session, bool, error) {
	var sess Session
	ok, err := s.readJSON(KeySession, &sess)
	return sess, ok, err
}

// SetSession stores sess.
func (s *State) SetSession(sess Session) error { return s.writeJSON(KeySession, sess) }

// ClearSession removes the stored session.
func (s *State) ClearSession() error { return s.erase(KeySession) }
