package store

import (
	"context"

	wodv1 "github.com/and161185/wodcal/internal/api/wodv1"
	"github.com/and161185/wodcal/internal/convert"
	"github.com/and161185/wodcal/internal/model"
)

// Parse sends content to the server-side AI import and returns its answer
// checked against the import schema.
func (r *Remote) Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error) {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return model.ImportResult{}, err
	}
	defer cancel()
	resp, err := r.cl.ParseContent(ctx, &wodv1.ParseContentRequest{Content: content, MediaType: mediaType})
	if err != nil {
		return model.ImportResult{}, convert.FromStatus(err)
	}
	return convert.FromWireImport(resp).Normalize()
}

// Generate asks the server for a Markdown WOD built from prompt.
func (r *Remote) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel, err := r.authed(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()
	resp, err := r.cl.GenerateWod(ctx, &wodv1.GenerateWodRequest{Prompt: prompt})
	if err != nil {
		return "", convert.FromStatus(err)
	}
	return resp.GetText(), nil
}
