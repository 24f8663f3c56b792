package v1

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse - единый формат ошибки API
// @Description Единый формат ошибки API
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}

// CreateIncidentRequest DTO для отправки отчета об инциденте
// @Description DTO для отправки отчета об инциденте
type CreateIncidentRequest struct {
	Type              string     `json:"type" validate:"required,oneof=Accident Fire Medical Crime Hazard Weather Other"`
	Severity          string     `json:"severity" validate:"required,oneof=Critical Warning Info"`
	Latitude          *float64   `json:"latitude,omitempty" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude         *float64   `json:"longitude,omitempty" validate:"required_with=Latitude,omitempty,longitude"`
	Address           string     `json:"address,omitempty" validate:"max=500"`
	Description       string     `json:"description" validate:"required,max=5000"`
	HelpNeeded        []string   `json:"help_needed" validate:"required,min=1,dive,max=100"`
	PeopleAffected    int        `json:"people_affected" validate:"gte=0"`
	Evidence          []string   `json:"evidence,omitempty" validate:"max=5"`
	DraftID           *uuid.UUID `json:"draft_id,omitempty"`
	ReporterName      string     `json:"reporter_name" validate:"required,max=100"`
	ReporterAvatarURL string     `json:"reporter_avatar_url,omitempty" validate:"omitempty,url"`
}

// PointResponse - координаты в ответах API
type PointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                uuid.UUID      `json:"id"`
	Type              string         `json:"type"`
	Severity          string         `json:"severity"`
	Location          *PointResponse `json:"location,omitempty"`
	Address           string         `json:"address,omitempty"`
	Description       string         `json:"description"`
	HelpNeeded        []string       `json:"help_needed"`
	PeopleAffected    int            `json:"people_affected"`
	Evidence          []string       `json:"evidence"`
	ReporterName      string         `json:"reporter_name"`
	ReporterAvatarURL string         `json:"reporter_avatar_url,omitempty"`
	IsAuthentic       bool           `json:"is_authentic"`
	Confidence        float64        `json:"authenticity_confidence"`
	AISummary         string         `json:"ai_summary"`
	Status            string         `json:"status"`
	VerificationCount int            `json:"verification_count"`
	StatusChangedAt   time.Time      `json:"status_changed_at"`
	CreatedAt         time.Time      `json:"created_at"`
}

// FeedEntryResponse - инцидент в ленте вместе с расстоянием до зрителя
type FeedEntryResponse struct {
	IncidentResponse
	DistanceKM float64 `json:"distance_km"`
}

// FeedResponse DTO для страницы ленты
// @Description DTO для страницы ленты
type FeedResponse struct {
	Entries  []FeedEntryResponse `json:"entries"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// VerifyRequest DTO для голоса пользователя
// @Description DTO для голоса пользователя
type VerifyRequest struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	Verdict string `json:"verdict" validate:"required,oneof=confirm unsure false"`
}

// UpdateStatusRequest DTO для смены статуса модератором
// @Description DTO для смены статуса модератором
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Unverified Verifying Verified False"`
}

// SummaryResponse DTO для краткой сводки
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// LocationCheckRequest DTO для проверки координат
// @Description DTO для проверки координат
type LocationCheckRequest struct {
	UserID       string   `json:"user_id" validate:"required"`
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters float64  `json:"radius_meters,omitempty" validate:"gte=0"`
}

// ResolveLocationRequest DTO для определения адреса по GPS
// @Description DTO для определения адреса по GPS
type ResolveLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// CellTowerRequest DTO для определения координат по соте
// @Description DTO для определения координат по соте
type CellTowerRequest struct {
	MCC int `json:"mcc" validate:"required,min=1,max=999"`
	MNC int `json:"mnc" validate:"min=0,max=999"`
	LAC int `json:"lac" validate:"min=0"`
	CID int `json:"cid" validate:"min=0"`
}

// LocationResponse DTO для результата определения местоположения
// @Description DTO для результата определения местоположения
type LocationResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address,omitempty"`
	AddressFound bool    `json:"address_found"`
	Message      string  `json:"message"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ByStatus        map[string]int `json:"by_status"`
	Total           int            `json:"total"`
	ActiveVerifiers int            `json:"active_verifiers"`
}

// DraftResponse DTO для созданного черновика вложений
type DraftResponse struct {
	DraftID uuid.UUID `json:"draft_id"`
}

// EvidenceItemResponse - одно вложение черновика
type EvidenceItemResponse struct {
	Index      int       `json:"index"`
	Kind       string    `json:"kind"`
	MIMEType   string    `json:"mime_type"`
	DataURI    string    `json:"data_uri"`
	CapturedAt time.Time `json:"captured_at"`
}

// EvidenceCountResponse - число вложений после добавления
type EvidenceCountResponse struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}
