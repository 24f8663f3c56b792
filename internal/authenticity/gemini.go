// Package authenticity asks a multimodal model whether a report is genuine.
package authenticity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/models"
)

var (
	ErrNotConfigured = apperr.New(apperr.KindNotConfigured, "authenticity validator is not configured: set GEMINI_API_KEY")
	ErrTimeout       = apperr.New(apperr.KindProvider, "authenticity validator timed out")
	ErrUnavailable   = apperr.New(apperr.KindProvider, "authenticity validator is unavailable")
	ErrMalformed     = apperr.New(apperr.KindProvider, "authenticity validator returned a malformed verdict")
)

// Request - поля отчета, передаваемые на проверку
type Request struct {
	Type           models.IncidentType
	Severity       models.Severity
	Location       string
	Description    string
	HelpNeeded     []string
	PeopleAffected int
	// Evidence holds data URIs and stored-object URLs; only data URIs are sent.
	Evidence []string
}

// SummaryRequest - данные для краткой сводки по инциденту
type SummaryRequest struct {
	Type     models.IncidentType
	Location string
	Severity models.Severity
	Details  string
}

// Validator judges a report and writes short summaries.
type Validator interface {
	Validate(ctx context.Context, req Request) (*models.Assessment, error)
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// generator is the part of *genai.Models the validator calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiValidator struct {
	gen      generator
	model    string
	timeout  time.Duration
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewGeminiValidator creates a validator backed by the Gemini API. An empty
// apiKey yields a validator that refuses every call with ErrNotConfigured.
func NewGeminiValidator(ctx context.Context, apiKey, model string, timeout time.Duration, logger *logrus.Logger) (*GeminiValidator, error) {
	v := newValidator(nil, model, timeout, logger)
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, incident submission is disabled")
		return v, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	v.gen = client.Models
	return v, nil
}

func newValidator(gen generator, model string, timeout time.Duration, logger *logrus.Logger) *GeminiValidator {
	return &GeminiValidator{
		gen:      gen,
		model:    model,
		timeout:  timeout,
		validate: validator.New(),
		logger:   logger,
	}
}

type verdict struct {
	IsAuthentic *bool    `json:"isAuthentic" validate:"required"`
	Confidence  *float64 `json:"authenticityConfidence" validate:"required,gte=0,lte=1"`
	Summary     *string  `json:"summary" validate:"required"`
}

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isAuthentic": {
			Type:        genai.TypeBoolean,
			Description: "Whether the incident report is judged authentic.",
		},
		"authenticityConfidence": {
			Type:        genai.TypeNumber,
			Description: "Confidence from 0 to 1 that the incident is authentic.",
			Minimum:     genai.Ptr(0.0),
			Maximum:     genai.Ptr(1.0),
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "A brief summary of the analysis.",
		},
	},
	Required: []string{"isAuthentic", "authenticityConfidence", "summary"},
}

var summarySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary": {Type: genai.TypeString},
	},
	Required: []string{"summary"},
}

// Validate sends the report and its inline media to the model. Any response
// that does not decode into a complete verdict is rejected.
func (v *GeminiValidator) Validate(ctx context.Context, req Request) (*models.Assessment, error) {
	log := v.logger.WithFields(logrus.Fields{
		"service": "authenticity",
		"method":  "Validate",
		"type":    req.Type,
	})
	if v.gen == nil {
		return nil, ErrNotConfigured
	}

	parts := []*genai.Part{genai.NewPartFromText(validatePrompt(req))}
	media := 0
	for _, ref := range req.Evidence {
		mimeType, data, err := evidence.ParseDataURI(ref)
		if err != nil {
			continue
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
		media++
	}

	text, err := v.generate(ctx, parts, verdictSchema)
	if err != nil {
		log.WithError(err).Error("Validation request failed")
		return nil, err
	}

	var out verdict
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		log.WithError(err).Warn("Verdict is not valid JSON")
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := v.validate.Struct(out); err != nil {
		log.WithError(err).Warn("Verdict failed schema check")
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(*out.Summary) == "" {
		return nil, ErrMalformed
	}

	log.WithFields(logrus.Fields{
		"media":        media,
		"is_authentic": *out.IsAuthentic,
		"confidence":   *out.Confidence,
	}).Info("Report assessed")

	return &models.Assessment{
		IsAuthentic: *out.IsAuthentic,
		Confidence:  *out.Confidence,
		Summary:     *out.Summary,
	}, nil
}

// Summarize returns a short digest of an incident for low-bandwidth readers.
func (v *GeminiValidator) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if v.gen == nil {
		return "", ErrNotConfigured
	}
	text, err := v.generate(ctx, []*genai.Part{genai.NewPartFromText(summaryPrompt(req))}, summarySchema)
	if err != nil {
		return "", err
	}
	var out struct {
		Summary *string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if out.Summary == nil || strings.TrimSpace(*out.Summary) == "" {
		return "", ErrMalformed
	}
	return *out.Summary, nil
}

func (v *GeminiValidator) generate(ctx context.Context, parts []*genai.Part, schema *genai.Schema) (string, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	resp, err := v.gen.GenerateContent(ctx, v.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp == nil {
		return "", ErrMalformed
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrMalformed
	}
	return text, nil
}
