package editor

// Present switches to the read-only Presenting mode, focused on the first section.
func (e *Editor) Present() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	e.mode = Presenting
	e.focus = 0
	return nil
}

// ExitPresent returns to Editing.
func (e *Editor) ExitPresent() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.mode != Presenting {
		return ErrWrongMode
	}
	e.mode = Editing
	return nil
}

// Next moves the focus forward, stopping at the last section.
func (e *Editor) Next() int { return e.step(1) }

// Prev moves the focus back, stopping at the first section.
func (e *Editor) Prev() int { return e.step(-1) }

func (e *Editor) step(d int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode != Presenting {
		return e.focus
	}
	f := e.focus + d
	if last := len(e.entry.Sections) - 1; f > last {
		f = last
	}
	if f < 0 {
		f = 0
	}
	e.focus = f
	return f
}

// ToggleShowAll flips between every section at once and one focused section.
func (e *Editor) ToggleShowAll() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showAll = !e.showAll
	return e.showAll
}

// Focused is the index of the focused section.
func (e *Editor) Focused() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus
}

func (e *Editor) ShowAll() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showAll
}
