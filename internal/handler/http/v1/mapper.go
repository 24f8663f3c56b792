package v1

import (
	"strings"

	"github.com/shenikar/incident_triage/internal/evidence"
	"github.com/shenikar/incident_triage/internal/feed"
	"github.com/shenikar/incident_triage/internal/models"
)

// DTOToSubmission преобразует DTO отчета в доменную модель
func DTOToSubmission(dto CreateIncidentRequest) *models.Submission {
	sub := &models.Submission{
		Type:           models.IncidentType(dto.Type),
		Severity:       models.Severity(dto.Severity),
		Address:        strings.TrimSpace(dto.Address),
		Description:    dto.Description,
		HelpNeeded:     dto.HelpNeeded,
		PeopleAffected: dto.PeopleAffected,
		Evidence:       dto.Evidence,
		DraftID:        dto.DraftID,
		Reporter: models.Reporter{
			Name:      strings.TrimSpace(dto.ReporterName),
			AvatarURL: dto.ReporterAvatarURL,
		},
	}
	// Координаты принимаются только парой
	if dto.Latitude != nil && dto.Longitude != nil {
		sub.Location = &models.Point{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return sub
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                model.ID,
		Type:              string(model.Type),
		Severity:          string(model.Severity),
		Address:           model.Address,
		Description:       model.Description,
		HelpNeeded:        model.HelpNeeded,
		PeopleAffected:    model.PeopleAffected,
		Evidence:          model.Evidence,
		ReporterName:      model.Reporter.Name,
		ReporterAvatarURL: model.Reporter.AvatarURL,
		IsAuthentic:       model.Assessment.IsAuthentic,
		Confidence:        model.Assessment.Confidence,
		AISummary:         model.Assessment.Summary,
		Status:            string(model.Status),
		VerificationCount: model.VerificationCount,
		StatusChangedAt:   model.StatusChangedAt,
		CreatedAt:         model.CreatedAt,
	}
	if model.Location != nil {
		resp.Location = &PointResponse{Latitude: model.Location.Latitude, Longitude: model.Location.Longitude}
	}
	if resp.Evidence == nil {
		resp.Evidence = []string{}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func FeedResultToResponse(res *feed.Result) *FeedResponse {
	entries := make([]FeedEntryResponse, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = FeedEntryResponse{
			IncidentResponse: *ModelToIncidentResponse(e.Incident),
			DistanceKM:       e.DistanceKM,
		}
	}
	return &FeedResponse{
		Entries:  entries,
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	}
}

func StatsToResponse(stats *models.Stats) *StatsResponse {
	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[string(status)] = n
	}
	return &StatsResponse{
		ByStatus:        byStatus,
		Total:           stats.Total,
		ActiveVerifiers: stats.ActiveVerifiers,
	}
}

func ResolutionToResponse(res *models.Resolution) *LocationResponse {
	return &LocationResponse{
		Latitude:     res.Point.Latitude,
		Longitude:    res.Point.Longitude,
		Address:      res.Address,
		AddressFound: res.AddressFound,
		Message:      res.Message,
	}
}

func ItemsToResponse(items []evidence.Item) []EvidenceItemResponse {
	out := make([]EvidenceItemResponse, len(items))
	for i, item := range items {
		out[i] = EvidenceItemResponse{
			Index:      i,
			Kind:       string(item.Kind),
			MIMEType:   item.MIMEType,
			DataURI:    item.DataURI,
			CapturedAt: item.CapturedAt,
		}
	}
	return out
}
