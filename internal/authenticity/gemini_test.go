package authenticity

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/models"
)

type fakeGenerator struct {
	text     string
	err      error
	block    bool
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contents = contents
	f.config = config
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(f.text, genai.RoleModel)},
		},
	}, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleRequest() Request {
	return Request{
		Type:           models.TypeFire,
		Severity:       models.SeverityCritical,
		Location:       "Andheri station, platform 3",
		Description:    "Smoke coming out of the electrical room next to the ticket office",
		HelpNeeded:     []string{"Fire", "Medical"},
		PeopleAffected: 12,
		Evidence: []string{
			evidence.EncodeDataURI("image/jpeg", []byte{0xff, 0xd8, 0xff}),
			"https://cdn.example.com/evidence/1.jpg",
		},
	}
}

func TestValidate_Success(t *testing.T) {
	gen := &fakeGenerator{text: `{"isAuthentic": true, "authenticityConfidence": 0.82, "summary": "Consistent report."}`}
	v := newValidator(gen, "gemini-test", time.Second, testLogger())

	got, err := v.Validate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, &models.Assessment{IsAuthentic: true, Confidence: 0.82, Summary: "Consistent report."}, got)

	require.Len(t, gen.contents, 1)
	parts := gen.contents[0].Parts
	require.Len(t, parts, 2, "prompt plus the single inline attachment")
	assert.Contains(t, parts[0].Text, "Incident Type: Fire")
	assert.Contains(t, parts[0].Text, "Help Needed: Fire, Medical")
	assert.Contains(t, parts[0].Text, "Number of People Affected: 12")
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
}

func TestValidate_FalseVerdictIsNotAnError(t *testing.T) {
	gen := &fakeGenerator{text: `{"isAuthentic": false, "authenticityConfidence": 0, "summary": "Photos show a different city."}`}
	v := newValidator(gen, "gemini-test", time.Second, testLogger())

	got, err := v.Validate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.False(t, got.IsAuthentic)
	assert.Zero(t, got.Confidence)
}

func TestValidate_RejectsMalformedVerdicts(t *testing.T) {
	cases := map[string]string{
		"confidence above one": `{"isAuthentic": true, "authenticityConfidence": 1.3, "summary": "ok"}`,
		"negative confidence":  `{"isAuthentic": true, "authenticityConfidence": -0.1, "summary": "ok"}`,
		"missing flag":         `{"authenticityConfidence": 0.5, "summary": "ok"}`,
		"missing confidence":   `{"isAuthentic": true, "summary": "ok"}`,
		"empty summary":        `{"isAuthentic": true, "authenticityConfidence": 0.5, "summary": "  "}`,
		"not json":             `the report looks fine`,
		"wrong type":           `{"isAuthentic": "yes", "authenticityConfidence": 0.5, "summary": "ok"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			v := newValidator(&fakeGenerator{text: text}, "gemini-test", time.Second, testLogger())
			got, err := v.Validate(context.Background(), sampleRequest())
			require.ErrorIs(t, err, ErrMalformed)
			assert.Equal(t, apperr.KindProvider, apperr.KindOf(err))
			assert.Nil(t, got)
		})
	}
}

func TestValidate_NotConfigured(t *testing.T) {
	v, err := NewGeminiValidator(context.Background(), "", "gemini-test", time.Second, testLogger())
	require.NoError(t, err)

	_, err = v.Validate(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, apperr.KindNotConfigured, apperr.KindOf(err))

	_, err = v.Summarize(context.Background(), SummaryRequest{})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestValidate_ProviderFailure(t *testing.T) {
	v := newValidator(&fakeGenerator{err: errors.New("503 service unavailable")}, "gemini-test", time.Second, testLogger())

	_, err := v.Validate(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, apperr.KindProvider, apperr.KindOf(err))
}

func TestValidate_Timeout(t *testing.T) {
	v := newValidator(&fakeGenerator{block: true}, "gemini-test", 20*time.Millisecond, testLogger())

	_, err := v.Validate(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrTimeout)
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{text: `{"summary": "Fire at Andheri station, 12 affected."}`}
	v := newValidator(gen, "gemini-test", time.Second, testLogger())

	got, err := v.Summarize(context.Background(), SummaryRequest{
		Type:     models.TypeFire,
		Location: "Andheri station",
		Severity: models.SeverityCritical,
		Details:  "Smoke from electrical room",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fire at Andheri station, 12 affected.", got)
	assert.Contains(t, gen.contents[0].Parts[0].Text, "Details: Smoke from electrical room")

	gen.text = `{}`
	_, err = v.Summarize(context.Background(), SummaryRequest{})
	require.ErrorIs(t, err, ErrMalformed)
}
