package models

import (
	"strings"

	"github.com/google/uuid"

	"github.com/shenikar/incident_triage/internal/apperr"
)

const (
	MinLocationLength    = 10
	MinDescriptionLength = 10
)

// Submission - отчет пользователя до проверки подлинности и сохранения
type Submission struct {
	Type           IncidentType
	Severity       Severity
	Location       *Point
	Address        string
	Description    string
	HelpNeeded     []string
	PeopleAffected int
	Evidence       []string
	DraftID        *uuid.UUID
	Reporter       Reporter
}

// Validate проверяет инварианты отчета, которые не зависят от хранилища
func (s *Submission) Validate() error {
	if !s.Type.Valid() {
		return apperr.New(apperr.KindInvalid, "unknown incident type")
	}
	if !s.Severity.Valid() {
		return apperr.New(apperr.KindInvalid, "unknown severity")
	}
	if s.Location != nil {
		if s.Location.Latitude < -90 || s.Location.Latitude > 90 ||
			s.Location.Longitude < -180 || s.Location.Longitude > 180 {
			return apperr.New(apperr.KindInvalid, "location is out of range")
		}
	}
	if len(strings.TrimSpace(s.Address)) < MinLocationLength && s.Location == nil {
		return apperr.New(apperr.KindInvalid, "please provide more details about the location")
	}
	if len(strings.TrimSpace(s.Description)) < MinDescriptionLength {
		return apperr.New(apperr.KindInvalid, "please provide more details about the incident")
	}
	helpNeeded := 0
	for _, h := range s.HelpNeeded {
		if strings.TrimSpace(h) != "" {
			helpNeeded++
		}
	}
	if helpNeeded == 0 {
		return apperr.New(apperr.KindInvalid, "select at least one kind of help needed")
	}
	if s.PeopleAffected < 0 {
		return apperr.New(apperr.KindInvalid, "number of people affected cannot be negative")
	}
	if strings.TrimSpace(s.Reporter.Name) == "" {
		return apperr.New(apperr.KindInvalid, "reporter name is required")
	}
	return nil
}
