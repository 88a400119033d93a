package editor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// NoticeFor is the notice shown for an import failure.
func NoticeFor(err error) string {
	if errors.Is(err, errs.ErrQuotaExceeded) || errors.Is(err, errs.ErrRateLimited) {
		return NoticeQuota
	}
	return NoticeImportFailed
}

// Import sends content to the AI importer and merges the answer. When the
// entry has no sections, or only one blank section, the imported sections
// replace them; otherwise they are appended. The title changes only when
// the answer has one. On failure nothing changes and a notice is set.
func (e *Editor) Import(ctx context.Context, content, mediaType string) error {
	e.mu.Lock()
	if err := e.editable(); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.importing {
		e.mu.Unlock()
		return ErrBusy
	}
	if e.ai == nil {
		e.notice = NoticeImportFailed
		e.mu.Unlock()
		return fmt.Errorf("import: %w", errs.ErrUnauthenticated)
	}
	e.importing = true
	life := e.ctx
	e.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(life, cancel)
	defer stop()

	res, err := e.ai.Parse(ctx, content, mediaType)
	if err == nil {
		res, err = res.Normalize()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.importing = false
	if e.closed {
		return ErrClosed
	}
	if err != nil {
		e.notice = NoticeFor(err)
		e.log.Warn("import failed", zap.String("media_type", mediaType), zap.Error(err))
		return err
	}
	e.merge(res)
	return nil
}

func (e *Editor) merge(res model.ImportResult) {
	fresh := make([]model.Section, 0, len(res.Sections))
	for _, s := range res.Sections {
		fresh = append(fresh, model.Section{ID: e.newID(), Title: s.Title, Content: s.Content})
	}
	if res.Title != "" {
		e.entry.Title = res.Title
	}
	cur := e.entry.Sections
	if len(cur) == 0 || (len(cur) == 1 && cur[0].Title == "" && cur[0].Content == "") {
		e.entry.Sections = fresh
	} else {
		e.entry.Sections = append(cur, fresh...)
	}
	if len(fresh) > 0 {
		e.active = fresh[0].ID
	}
}

var extraTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".json":     "application/json",
	".pdf":      "application/pdf",
}

// MediaType guesses the media type of a file from its extension, falling
// back to content sniffing.
func MediaType(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	mt := extraTypes[ext]
	if mt == "" {
		mt = mime.TypeByExtension(ext)
	}
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}

// ReadImportFile reads path for Import. Text-like files are returned as
// text; anything else as a base64 data URL.
func ReadImportFile(path string) (content, mediaType string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read import file: %w", err)
	}
	mediaType = MediaType(path, data)
	if model.IsTextMedia(mediaType) {
		return string(data), mediaType, nil
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), mediaType, nil
}
