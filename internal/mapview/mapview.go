// Package mapview turns incidents into map markers and a detail popup.
package mapview

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/shenikar/incident_triage/internal/models"
)

const (
	ColorRed   = "#F44336"
	ColorAmber = "#FF9800"
	ColorBlue  = "#2196F3"
	ColorGray  = "#9E9E9E"
	ColorGreen = "#4CAF50"
	ColorSlate = "#607D8B"
)

const (
	defaultZoom     = 12
	styleURL        = "https://tiles.stadiamaps.com/styles/alidade_smooth.json"
	unavailableHead = "Map Unavailable"
	unavailableBody = "The Stadia Maps API key is missing. Configure it in the STADIA_MAPS_API_KEY environment variable."
)

// MarkerColor picks the pin colour: status first, severity only once verified.
func MarkerColor(status models.Status, severity models.Severity) string {
	switch status {
	case models.StatusUnverified:
		return ColorGray
	case models.StatusVerifying:
		return ColorAmber
	case models.StatusFalse:
		return ColorSlate
	case models.StatusVerified:
		switch severity {
		case models.SeverityCritical:
			return ColorRed
		case models.SeverityWarning:
			return ColorAmber
		case models.SeverityInfo:
			return ColorBlue
		default:
			return ColorGreen
		}
	default:
		return ColorGray
	}
}

// Selection holds the incident whose popup is open. There is never more
// than one.
type Selection struct {
	id *uuid.UUID
}

func (s *Selection) Select(id uuid.UUID) {
	s.id = &id
}

func (s *Selection) Clear() {
	s.id = nil
}

func (s *Selection) Selected() (uuid.UUID, bool) {
	if s.id == nil {
		return uuid.Nil, false
	}
	return *s.id, true
}

type Marker struct {
	IncidentID uuid.UUID           `json:"incident_id"`
	Position   models.Point        `json:"position"`
	Color      string              `json:"color"`
	Type       models.IncidentType `json:"type"`
	Status     models.Status       `json:"status"`
	Severity   models.Severity     `json:"severity"`
}

type Popup struct {
	IncidentID  uuid.UUID           `json:"incident_id"`
	Position    models.Point        `json:"position"`
	Type        models.IncidentType `json:"type"`
	Status      models.Status       `json:"status"`
	Description string              `json:"description"`
	Address     string              `json:"address"`
	ReportedAt  time.Time           `json:"reported_at"`
}

type Placeholder struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// View - все, что нужно клиенту для отрисовки карты
type View struct {
	Available   bool         `json:"available"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
	StyleURL    string       `json:"style_url,omitempty"`
	Center      models.Point `json:"center"`
	Zoom        int          `json:"zoom"`
	Markers     []Marker     `json:"markers"`
	Popup       *Popup       `json:"popup,omitempty"`
}

type Presenter struct {
	apiKey string
}

func NewPresenter(apiKey string) *Presenter {
	return &Presenter{apiKey: apiKey}
}

// Render builds the view. Without a tile credential it returns a
// placeholder view instead of failing.
func (p *Presenter) Render(incidents []*models.Incident, sel Selection, center models.Point) View {
	if p.apiKey == "" {
		return View{
			Available:   false,
			Placeholder: &Placeholder{Title: unavailableHead, Message: unavailableBody},
			Center:      center,
			Zoom:        defaultZoom,
			Markers:     []Marker{},
		}
	}

	view := View{
		Available: true,
		StyleURL:  styleURL + "?api_key=" + url.QueryEscape(p.apiKey),
		Center:    center,
		Zoom:      defaultZoom,
		Markers:   make([]Marker, 0, len(incidents)),
	}

	selected, hasSelection := sel.Selected()
	for _, inc := range incidents {
		if inc == nil || inc.Location == nil {
			continue
		}
		view.Markers = append(view.Markers, Marker{
			IncidentID: inc.ID,
			Position:   *inc.Location,
			Color:      MarkerColor(inc.Status, inc.Severity),
			Type:       inc.Type,
			Status:     inc.Status,
			Severity:   inc.Severity,
		})
		if hasSelection && inc.ID == selected {
			view.Popup = &Popup{
				IncidentID:  inc.ID,
				Position:    *inc.Location,
				Type:        inc.Type,
				Status:      inc.Status,
				Description: inc.Description,
				Address:     inc.Address,
				ReportedAt:  inc.CreatedAt,
			}
		}
	}
	return view
}
