// Package feed orders incidents for the list view.
package feed

import (
	"math"
	"slices"

	"github.com/shenikar/incident_triage/internal/models"
)

type SortMode string

const (
	SortRecency  SortMode = "recency"
	SortSeverity SortMode = "severity"
	SortDistance SortMode = "distance"
)

func (m SortMode) Valid() bool {
	return m == SortRecency || m == SortSeverity || m == SortDistance
}

const earthRadiusKM = 6371.0

// DefaultViewer используется, когда позиция зрителя недоступна
var DefaultViewer = models.Point{Latitude: 19.0760, Longitude: 72.8777}

var severityRank = map[models.Severity]int{
	models.SeverityCritical: 3,
	models.SeverityWarning:  2,
	models.SeverityInfo:     1,
}

// SeverityRank returns 0 for unknown severities.
func SeverityRank(s models.Severity) int {
	return severityRank[s]
}

// Distance returns the great-circle distance in kilometres. A missing point
// or any zero coordinate yields 0, matching how clients without a fix have
// always been ranked.
func Distance(a, b *models.Point) float64 {
	if a == nil || b == nil {
		return 0
	}
	if a.Latitude == 0 || a.Longitude == 0 || b.Latitude == 0 || b.Longitude == 0 {
		return 0
	}
	if *a == *b {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	if h > 1 {
		h = 1
	}
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// Options описывает запрошенное представление ленты
type Options struct {
	Mode   SortMode
	Viewer *models.Point
	// MissingLocationLast ranks incidents without coordinates after located
	// ones in distance mode instead of treating them as co-located.
	MissingLocationLast bool
}

type Entry struct {
	Incident   *models.Incident `json:"incident"`
	DistanceKM float64          `json:"distance_km"`
}

// Assemble enriches every incident with its distance to the viewer and
// returns them in the requested order. Ties keep input order. The input
// slice is not modified.
func Assemble(incidents []*models.Incident, opts Options) []Entry {
	viewer := opts.Viewer
	if viewer == nil {
		viewer = &DefaultViewer
	}

	entries := make([]Entry, 0, len(incidents))
	for _, inc := range incidents {
		if inc == nil {
			continue
		}
		entries = append(entries, Entry{Incident: inc, DistanceKM: Distance(viewer, inc.Location)})
	}

	switch opts.Mode {
	case SortRecency:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return b.Incident.CreatedAt.Compare(a.Incident.CreatedAt)
		})
	case SortSeverity:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return SeverityRank(b.Incident.Severity) - SeverityRank(a.Incident.Severity)
		})
	case SortDistance:
		slices.SortStableFunc(entries, func(a, b Entry) int {
			if opts.MissingLocationLast {
				am, bm := !a.Incident.HasLocation(), !b.Incident.HasLocation()
				if am != bm {
					if am {
						return 1
					}
					return -1
				}
			}
			switch {
			case a.DistanceKM < b.DistanceKM:
				return -1
			case a.DistanceKM > b.DistanceKM:
				return 1
			}
			return 0
		})
	}
	return entries
}

// Page вырезает страницу из уже упорядоченной ленты
func Page(entries []Entry, page, pageSize int) []Entry {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || len(entries) == 0 {
		return []Entry{}
	}
	// Номер страницы проверяется до умножения, чтобы не переполнить int
	if page-1 > (len(entries)-1)/pageSize {
		return []Entry{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(entries)-start)
	return entries[start:end]
}

// Query - параметры запроса ленты
type Query struct {
	Mode     SortMode
	Viewer   *models.Point
	Page     int
	PageSize int
}

// Result - одна страница упорядоченной ленты
type Result struct {
	Entries  []Entry `json:"entries"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
