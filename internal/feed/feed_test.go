package feed

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/shenikar/incident_triage/internal/models"
)

var (
	mumbai = &models.Point{Latitude: 19.0760, Longitude: 72.8777}
	delhi  = &models.Point{Latitude: 28.6139, Longitude: 77.2090}
	pune   = &models.Point{Latitude: 18.5204, Longitude: 73.8567}
)

func incident(desc string, sev models.Severity, loc *models.Point, created time.Time) *models.Incident {
	return &models.Incident{Description: desc, Severity: sev, Location: loc, CreatedAt: created}
}

func descriptions(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Incident.Description
	}
	return out
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]*models.Point{{mumbai, delhi}, {delhi, pune}, {pune, mumbai}}
	for _, p := range pairs {
		assert.InDelta(t, Distance(p[0], p[1]), Distance(p[1], p[0]), 1e-9)
	}
}

func TestDistance_SamePointIsZero(t *testing.T) {
	for _, p := range []*models.Point{mumbai, delhi, pune} {
		assert.Zero(t, Distance(p, p))
	}
}

func TestDistance_Kilometres(t *testing.T) {
	assert.InDelta(t, 1150, Distance(mumbai, delhi), 15)
	assert.InDelta(t, 120, Distance(mumbai, pune), 10)
}

func TestDistance_MissingOrZeroCoordinates(t *testing.T) {
	assert.Zero(t, Distance(mumbai, nil))
	assert.Zero(t, Distance(nil, delhi))
	assert.Zero(t, Distance(mumbai, &models.Point{Latitude: 0, Longitude: 77.2}))
	assert.Zero(t, Distance(&models.Point{Latitude: 19.07, Longitude: 0}, delhi))
}

func TestAssemble_SeverityOrder(t *testing.T) {
	now := time.Now()
	in := []*models.Incident{
		incident("info-1", models.SeverityInfo, nil, now),
		incident("critical-1", models.SeverityCritical, nil, now),
		incident("unknown", models.Severity("Odd"), nil, now),
		incident("warning-1", models.SeverityWarning, nil, now),
		incident("critical-2", models.SeverityCritical, nil, now),
		incident("info-2", models.SeverityInfo, nil, now),
	}

	got := descriptions(Assemble(in, Options{Mode: SortSeverity}))
	want := []string{"critical-1", "critical-2", "warning-1", "info-1", "info-2", "unknown"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("severity order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_RecencyOrder(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	in := []*models.Incident{
		incident("oldest", models.SeverityInfo, nil, base),
		incident("newest", models.SeverityInfo, nil, base.Add(2*time.Hour)),
		incident("tie-a", models.SeverityInfo, nil, base.Add(time.Hour)),
		incident("tie-b", models.SeverityInfo, nil, base.Add(time.Hour)),
	}

	got := descriptions(Assemble(in, Options{Mode: SortRecency}))
	want := []string{"newest", "tie-a", "tie-b", "oldest"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("recency order mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemble_DistanceOrder(t *testing.T) {
	now := time.Now()
	in := []*models.Incident{
		incident("delhi", models.SeverityInfo, delhi, now),
		incident("pune", models.SeverityInfo, pune, now),
		incident("here", models.SeverityInfo, &models.Point{Latitude: 19.0760, Longitude: 72.8777}, now),
	}

	entries := Assemble(in, Options{Mode: SortDistance, Viewer: mumbai})
	assert.Equal(t, []string{"here", "pune", "delhi"}, descriptions(entries))
	assert.Zero(t, entries[0].DistanceKM)
	assert.Greater(t, entries[2].DistanceKM, entries[1].DistanceKM)
}

func TestAssemble_DefaultViewer(t *testing.T) {
	in := []*models.Incident{
		incident("delhi", models.SeverityInfo, delhi, time.Now()),
		incident("mumbai", models.SeverityInfo, mumbai, time.Now()),
	}

	entries := Assemble(in, Options{Mode: SortDistance})
	assert.Equal(t, "mumbai", entries[0].Incident.Description)
	assert.Zero(t, entries[0].DistanceKM)
}

func TestAssemble_MissingLocation(t *testing.T) {
	in := []*models.Incident{
		incident("pune", models.SeverityInfo, pune, time.Now()),
		incident("unknown", models.SeverityInfo, nil, time.Now()),
	}

	compat := Assemble(in, Options{Mode: SortDistance, Viewer: mumbai})
	assert.Equal(t, []string{"unknown", "pune"}, descriptions(compat))

	last := Assemble(in, Options{Mode: SortDistance, Viewer: mumbai, MissingLocationLast: true})
	assert.Equal(t, []string{"pune", "unknown"}, descriptions(last))
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []*models.Incident{
		incident("old", models.SeverityInfo, nil, now.Add(-time.Hour)),
		incident("new", models.SeverityInfo, nil, now),
	}

	Assemble(in, Options{Mode: SortRecency})
	assert.Equal(t, "old", in[0].Description)
}

func TestPage(t *testing.T) {
	entries := make([]Entry, 5)
	for i := range entries {
		entries[i] = Entry{DistanceKM: float64(i)}
	}

	assert.Len(t, Page(entries, 1, 2), 2)
	assert.Equal(t, 4.0, Page(entries, 3, 2)[0].DistanceKM)
	assert.Empty(t, Page(entries, 4, 2))
	assert.Len(t, Page(entries, 0, 10), 5)
	assert.Len(t, Page(entries, 1, math.MaxInt), 5)
	assert.Empty(t, Page(nil, 1, 20))
}

func TestPage_HugePageNumber(t *testing.T) {
	entries := make([]Entry, 3)

	assert.NotPanics(t, func() {
		assert.Empty(t, Page(entries, math.MaxInt64/20+2, 20))
		assert.Empty(t, Page(entries, math.MaxInt, 1))
	})
}
