package geolocation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/models"
)

const defaultProviderMessage = "Could not retrieve location from provider."

var (
	ErrCellNotConfigured = apperr.New(apperr.KindNotConfigured, "Location service is not configured. API key missing.")
	ErrCellUnavailable   = apperr.New(apperr.KindProvider, "An error occurred while fetching location.")
	ErrInvalidCell       = apperr.New(apperr.KindInvalid, "Invalid cell tower data.")
)

// CellLocator estimates a position from the serving cell tower.
type CellLocator interface {
	Locate(ctx context.Context, cell models.CellTower) (*models.Point, error)
}

// APIError represents a non-2xx HTTP response.
type APIError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures UnwiredClient behavior.
type Option func(*UnwiredClient)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *UnwiredClient) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *UnwiredClient) {
		c.httpClient = hc
	}
}

// UnwiredClient is a single-attempt client for the Unwired Labs
// geolocation API.
type UnwiredClient struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewUnwiredClient(url, token string, opts ...Option) *UnwiredClient {
	c := &UnwiredClient{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type unwiredCell struct {
	LAC int `json:"lac"`
	CID int `json:"cid"`
}

type unwiredRequest struct {
	Token   string        `json:"token"`
	Radio   string        `json:"radio"`
	MCC     int           `json:"mcc"`
	MNC     int           `json:"mnc"`
	Cells   []unwiredCell `json:"cells"`
	Address int           `json:"address"`
}

type unwiredResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

func validCell(cell models.CellTower) bool {
	return cell.MCC > 0 && cell.MCC <= 999 &&
		cell.MNC >= 0 && cell.MNC <= 999 &&
		cell.LAC >= 0 && cell.CID >= 0
}

// Locate asks the provider for the tower position. A provider "error"
// status is reported as NotFound carrying the provider's own message.
func (c *UnwiredClient) Locate(ctx context.Context, cell models.CellTower) (*models.Point, error) {
	if !validCell(cell) {
		return nil, ErrInvalidCell
	}
	if c.token == "" {
		return nil, ErrCellNotConfigured
	}

	body, err := json.Marshal(unwiredRequest{
		Token:   c.token,
		Radio:   "gsm",
		MCC:     cell.MCC,
		MNC:     cell.MNC,
		Cells:   []unwiredCell{{LAC: cell.LAC, CID: cell.CID}},
		Address: 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCellUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCellUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(raw)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		return nil, fmt.Errorf("%w: %w", ErrCellUnavailable, &APIError{StatusCode: resp.StatusCode, Body: bodyStr})
	}

	var out unwiredResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCellUnavailable, err)
	}
	if out.Status != "ok" {
		msg := out.Message
		if msg == "" {
			msg = defaultProviderMessage
		}
		return nil, apperr.New(apperr.KindNotFound, msg)
	}
	return &models.Point{Latitude: out.Lat, Longitude: out.Lon}, nil
}

// IsAPIError reports whether err carries a non-2xx provider response.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
