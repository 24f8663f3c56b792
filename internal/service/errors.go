package service

import "github.com/shenikar/incident_triage/internal/apperr"

var (
	ErrIncidentNotFound = apperr.New(apperr.KindNotFound, "incident not found")
	ErrAlreadyVoted     = apperr.New(apperr.KindConflict, "you have already given feedback on this incident")
	ErrDraftNotFound    = apperr.New(apperr.KindNotFound, "evidence draft not found or expired")
	ErrInvalidStatus    = apperr.New(apperr.KindInvalid, "unknown incident status")
	ErrInvalidVerdict   = apperr.New(apperr.KindInvalid, "verdict must be one of confirm, unsure, false")
	ErrInvalidLocation  = apperr.New(apperr.KindInvalid, "latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrInvalidSortMode  = apperr.New(apperr.KindInvalid, "sort must be one of recency, severity, distance")
)
