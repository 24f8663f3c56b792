package models

import (
	"time"

	"github.com/google/uuid"
)

type IncidentType string

const (
	TypeAccident IncidentType = "Accident"
	TypeFire     IncidentType = "Fire"
	TypeMedical  IncidentType = "Medical"
	TypeCrime    IncidentType = "Crime"
	TypeHazard   IncidentType = "Hazard"
	TypeWeather  IncidentType = "Weather"
	TypeOther    IncidentType = "Other"
)

// IncidentTypes перечисляет все допустимые типы инцидентов
var IncidentTypes = []IncidentType{
	TypeAccident, TypeFire, TypeMedical, TypeCrime, TypeHazard, TypeWeather, TypeOther,
}

func (t IncidentType) Valid() bool {
	for _, known := range IncidentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityWarning  Severity = "Warning"
	SeverityInfo     Severity = "Info"
)

func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityWarning || s == SeverityInfo
}

// Status - положение инцидента в жизненном цикле подтверждения
type Status string

const (
	StatusUnverified Status = "Unverified"
	StatusVerifying  Status = "Verifying"
	StatusVerified   Status = "Verified"
	StatusFalse      Status = "False"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnverified, StatusVerifying, StatusVerified, StatusFalse:
		return true
	}
	return false
}

// Point - пара широта/долгота в градусах
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Reporter struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Assessment - вердикт валидатора подлинности
type Assessment struct {
	IsAuthentic bool    `json:"is_authentic"`
	Confidence  float64 `json:"authenticity_confidence"`
	Summary     string  `json:"ai_summary"`
}

type Incident struct {
	ID                uuid.UUID    `json:"id"`
	Type              IncidentType `json:"type"`
	Severity          Severity     `json:"severity"`
	Location          *Point       `json:"location,omitempty"`
	Address           string       `json:"address"`
	Description       string       `json:"description"`
	HelpNeeded        []string     `json:"help_needed"`
	PeopleAffected    int          `json:"people_affected"`
	Evidence          []string     `json:"evidence"`
	Reporter          Reporter     `json:"reporter"`
	Assessment        Assessment   `json:"assessment"`
	Status            Status       `json:"status"`
	VerificationCount int          `json:"verification_count"`
	StatusChangedAt   time.Time    `json:"status_changed_at"`
	CreatedAt         time.Time    `json:"created_at"`
}

// HasLocation сообщает, известны ли координаты инцидента
func (i *Incident) HasLocation() bool {
	return i.Location != nil
}
