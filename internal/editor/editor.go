// Package editor is the entry editor state machine: an Editing mode that
// mutates the title and sections of one entry, and a read-only Presenting
// mode that steps through the sections on a big screen.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

var (
	// ErrBusy is returned when a save, delete or import is already in flight.
	ErrBusy = errors.New("editor: operation in progress")
	// ErrClosed is returned by every operation after Close, including an
	// import whose answer arrived too late.
	ErrClosed = errors.New("editor: closed")
	// ErrWrongMode is returned by Editing operations while Presenting and vice versa.
	ErrWrongMode = errors.New("editor: not available in this mode")
	// ErrNotSaved is returned by Delete on an entry that was never stored.
	ErrNotSaved = errors.New("editor: entry is not stored yet")
)

// Mode of the editor.
type Mode int

const (
	Editing Mode = iota
	Presenting
)

func (m Mode) String() string {
	if m == Presenting {
		return "presenting"
	}
	return "editing"
}

// User-visible notices.
const (
	NoticeQuota        = "⏳ Límite de uso de IA alcanzado. Por favor espera 1 minuto y prueba de nuevo."
	NoticeImportFailed = "Error al analizar el contenido. Intenta nuevamente."
	NoticeSaveFailed   = "No se pudo guardar el WOD. Tus cambios no se han perdido."
	NoticeDeleteFailed = "No se pudo eliminar el WOD."
)

// Store is the write side of the entry store. Implemented by *store.Store.
type Store interface {
	Save(ctx context.Context, e model.Entry) (model.Entry, error)
	Delete(ctx context.Context, id string) error
}

// Importer is the AI import collaborator. Implemented by *store.Remote.
type Importer interface {
	Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithIDs replaces the section id generator.
func WithIDs(next func() string) Option {
	return func(e *Editor) { e.newID = next }
}

// Editor holds one entry being created or edited. It is safe for concurrent
// use: the presenting UI and an in-flight import may run on different goroutines.
type Editor struct {
	mu sync.Mutex

	entry  model.Entry
	stored bool
	mode   Mode
	active string

	focus   int
	showAll bool

	busy      bool
	importing bool
	closed    bool
	notice    string

	st  Store
	ai  Importer
	log *zap.Logger

	newID  func() string
	ctx    context.Context
	cancel context.CancelFunc
}

// DefaultTitle is the title of a new entry on date ("2006-01-02").
func DefaultTitle(date string) string {
	d, err := model.ParseDate(date)
	if err != nil {
		return "WOD " + date
	}
	return "WOD " + d.Format("02/01/2006")
}

// New returns an editor creating an entry on date. The entry starts with no sections.
func New(st Store, ai Importer, date string, opts ...Option) *Editor {
	e := newEditor(st, ai, opts)
	e.entry = model.Entry{Date: date, Title: DefaultTitle(date), Sections: []model.Section{}}
	return e
}

// Open returns an editor on a stored entry. Entries saved before sections
// existed get their text wrapped into a single section.
func Open(st Store, ai Importer, entry model.Entry, opts ...Option) *Editor {
	e := newEditor(st, ai, opts)
	entry = entry.UpgradeLegacy(e.newID()).WithLegacyContent()
	e.entry = entry
	e.stored = true
	if len(entry.Sections) > 0 {
		e.active = entry.Sections[0].ID
	}
	return e
}

func newEditor(st Store, ai Importer, opts []Option) *Editor {
	e := &Editor{st: st, ai: ai}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.newID == nil {
		e.newID = func() string { return uuid.Must(uuid.NewV4()).String() }
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	return e
}

// Entry returns a copy of the entry as currently edited.
func (e *Editor) Entry() model.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Editor) snapshot() model.Entry {
	out := e.entry
	out.Sections = append([]model.Section{}, e.entry.Sections...)
	return out
}

// IsNew reports whether the entry has never been stored.
func (e *Editor) IsNew() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.stored
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Active is the id of the section that has focus while editing.
func (e *Editor) Active() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Busy reports whether a save, delete or import is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy || e.importing
}

func (e *Editor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Notice is the last user-visible failure message, or "".
func (e *Editor) Notice() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

func (e *Editor) DismissNotice() {
	e.mu.Lock()
	e.notice = ""
	e.mu.Unlock()
}

// editable must be called with mu held.
func (e *Editor) editable() error {
	if e.closed {
		return ErrClosed
	}
	if e.mode != Editing {
		return ErrWrongMode
	}
	return nil
}

func (e *Editor) SetTitle(title string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	e.entry.Title = title
	return nil
}

// AddSection appends an empty section, makes it active and returns its id.
func (e *Editor) AddSection() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return "", err
	}
	s := model.Section{ID: e.newID()}
	e.entry.Sections = append(e.entry.Sections, s)
	e.active = s.ID
	return s.ID, nil
}

// RemoveSection deletes the section with id. Removing the last one leaves
// the entry without sections.
func (e *Editor) RemoveSection(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	kept := e.entry.Sections[:0:0]
	for _, s := range e.entry.Sections {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	e.entry.Sections = kept
	if e.active == id {
		e.active = ""
		if len(kept) > 0 {
			e.active = kept[0].ID
		}
	}
	return nil
}

// UpdateSection replaces the title and content of the section with id.
func (e *Editor) UpdateSection(id, title, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	for i := range e.entry.Sections {
		if e.entry.Sections[i].ID == id {
			e.entry.Sections[i].Title = title
			e.entry.Sections[i].Content = content
			return nil
		}
	}
	return fmt.Errorf("section %s: %w", id, errs.ErrNotFound)
}

// SetActive focuses the section with id.
func (e *Editor) SetActive(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	for _, s := range e.entry.Sections {
		if s.ID == id {
			e.active = id
			return nil
		}
	}
	return fmt.Errorf("section %s: %w", id, errs.ErrNotFound)
}

// Save stores the entry and closes the editor. On failure the edited state
// is kept and a notice is set. A blank title falls back to DefaultTitle.
func (e *Editor) Save(ctx context.Context) (model.Entry, error) {
	e.mu.Lock()
	if err := e.editable(); err != nil {
		e.mu.Unlock()
		return model.Entry{}, err
	}
	if e.busy {
		e.mu.Unlock()
		return model.Entry{}, ErrBusy
	}
	e.busy = true
	out := e.snapshot()
	out.Title = strings.TrimSpace(out.Title)
	if out.Title == "" {
		out.Title = DefaultTitle(out.Date)
	}
	out = out.WithLegacyContent()
	e.mu.Unlock()

	saved, err := e.st.Save(ctx, out)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false
	if err != nil {
		e.notice = NoticeSaveFailed
		e.log.Warn("save entry failed", zap.String("date", out.Date), zap.Error(err))
		return model.Entry{}, err
	}
	e.entry = saved
	e.stored = true
	e.closeLocked()
	return saved, nil
}

// Delete removes a stored entry and closes the editor.
func (e *Editor) Delete(ctx context.Context) error {
	e.mu.Lock()
	if err := e.editable(); err != nil {
		e.mu.Unlock()
		return err
	}
	if !e.stored {
		e.mu.Unlock()
		return ErrNotSaved
	}
	if e.busy {
		e.mu.Unlock()
		return ErrBusy
	}
	e.busy = true
	id := e.entry.ID
	e.mu.Unlock()

	err := e.st.Delete(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false
	if err != nil {
		e.notice = NoticeDeleteFailed
		e.log.Warn("delete entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	e.closeLocked()
	return nil
}

// Close abandons the editor. An import still in flight is cancelled and its
// answer, if any, is dropped.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
}

func (e *Editor) closeLocked() {
	if e.closed {
		return
	}
	e.closed = true
	e.cancel()
}
