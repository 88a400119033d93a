// Package importer turns pasted text, images and PDFs into workout sections
// through the Gemini generative-language API.
package importer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/and161185/wodcal/internal/errs"
	"github.com/and161185/wodcal/internal/model"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-flash-latest"

const parsePrompt = `You are an expert CrossFit coach.
Analyze the attached content (image, PDF or text). It contains a Workout of the Day.
Return the workout structure as strict JSON with this shape:
{"title": "Title of the WOD", "sections": [{"title": "Section name (Warm Up, Skill, WOD, Cool Down)", "content": "Full details of the section"}]}
Rules:
- "content" lists exercises, reps and rounds with clean formatting.
- Prefer the original section names when they are clear.
- Return ONLY JSON, no markdown fences.
- Respond in Spanish.`

const generatePrompt = `You are an elite CrossFit coach.
Write a challenging but scalable Workout of the Day with these parts:
1. WARM-UP (5-10 min)
2. STRENGTH/SKILL
3. METCON
4. COOL DOWN
Use standard CrossFit terms (AMRAP, EMOM, RFT). Format it as concise Markdown.
Respond in Spanish.`

const defaultGenerateRequest = "Generate a random intermediate level WOD focusing on general physical preparedness."

// contentGenerator is the subset of *genai.Models used by Gemini.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements service.Importer on top of the genai SDK.
type Gemini struct {
	models contentGenerator
	model  string
	log    *zap.Logger
}

// New builds a Gemini importer for apiKey. An empty model selects DefaultModel.
func New(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithModels(client.Models, modelName, log), nil
}

// NewWithModels builds a Gemini importer over any content generator.
func NewWithModels(models contentGenerator, modelName string, log *zap.Logger) *Gemini {
	if modelName == "" {
		modelName = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{models: models, model: modelName, log: log}
}

// Parse asks the model for the section structure of content.
// Non-text content is a data URL or bare base64 of the raw bytes.
func (g *Gemini) Parse(ctx context.Context, content, mediaType string) (model.ImportResult, error) {
	parts := []*genai.Part{genai.NewPartFromText(parsePrompt)}
	if model.IsTextMedia(mediaType) {
		parts = append(parts, genai.NewPartFromText(content))
	} else {
		raw, err := decodePayload(content)
		if err != nil {
			return model.ImportResult{}, fmt.Errorf("%w: %v", errs.ErrInvalidArgument, err)
		}
		parts = append(parts, genai.NewPartFromBytes(raw, mediaType))
	}

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		g.log.Warn("gemini parse failed", zap.String("media_type", mediaType), zap.Error(err))
		return model.ImportResult{}, classify(err)
	}
	return DecodeResult(resp.Text())
}

// Generate writes a new workout in Markdown. An empty prompt asks for a random one.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultGenerateRequest
	}
	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(generatePrompt+"\n\n"+prompt),
		nil,
	)
	if err != nil {
		g.log.Warn("gemini generate failed", zap.Error(err))
		return "", classify(err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// DecodeResult strips markdown code fences from a model answer and decodes
// it as an ImportResult. Type mismatches (a numeric title, sections that are
// not a list) are reported as errs.ErrInvalidImport.
func DecodeResult(text string) (model.ImportResult, error) {
	body := strings.TrimSpace(stripFences(text))
	var res model.ImportResult
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return model.ImportResult{}, fmt.Errorf("%w: %v", errs.ErrInvalidImport, err)
	}
	return res.Normalize()
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

func decodePayload(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.IndexByte(s, ',')
		if i < 0 {
			return nil, errors.New("malformed data url")
		}
		s = s[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

// classify maps provider quota and rate-limit failures to errs.ErrQuotaExceeded.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", errs.ErrQuotaExceeded, apiErr.Message)
	}
	if IsQuotaMessage(err.Error()) {
		return fmt.Errorf("%w: %v", errs.ErrQuotaExceeded, err)
	}
	return err
}

// IsQuotaMessage reports whether an error text looks like a quota or rate-limit failure.
func IsQuotaMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "429") || strings.Contains(m, "resource_exhausted") || strings.Contains(m, "quota")
}
