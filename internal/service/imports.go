package service

import (
	"context"
	"strings"

	"github.com/and161185/wodcal/internal/model"
)

// Importer is the AI collaborator turning raw content into sections.
// Implemented by importer.Gemini.
type Importer interface {
	Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImportService validates import requests and answers around an Importer.
type ImportService interface {
	// Parse converts content of mediaType into a schema-checked ImportResult.
	Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error)
	// Generate writes a new workout in Markdown from an optional prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

type ImportServiceImpl struct {
	ai Importer
}

// NewImportService constructs ImportService over an AI importer.
func NewImportService(ai Importer) *ImportServiceImpl {
	return &ImportServiceImpl{ai: ai}
}

// DefaultMediaType is assumed when a request carries none.
const DefaultMediaType = "text/plain"

// Parse rejects empty content and never returns a result that fails Normalize.
func (s *ImportServiceImpl) Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error) {
	if strings.TrimSpace(content) == "" {
		return model.ImportResult{}, invalid("empty content")
	}
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	res, err := s.ai.Parse(ctx, content, mediaType)
	if err != nil {
		return model.ImportResult{}, err
	}
	return res.Normalize()
}

// Generate delegates to the AI importer.
func (s *ImportServiceImpl) Generate(ctx context.Context, prompt string) (string, error) {
	return s.ai.Generate(ctx, strings.TrimSpace(prompt))
}
