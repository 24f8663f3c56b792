package models

import (
	"time"

	"github.com/google/uuid"
)

// Verdict - отзыв пользователя о достоверности отчета
type Verdict string

const (
	VerdictConfirm Verdict = "confirm"
	VerdictUnsure  Verdict = "unsure"
	VerdictFalse   Verdict = "false"
)

func (v Verdict) Valid() bool {
	return v == VerdictConfirm || v == VerdictUnsure || v == VerdictFalse
}

// Verification представляет голос пользователя по инциденту
type Verification struct {
	ID         int64     `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	UserID     string    `json:"user_id"`
	Verdict    Verdict   `json:"verdict"`
	CreatedAt  time.Time `json:"created_at"`
}

// VerificationTally - голоса, поданные в текущем окне подсчета
type VerificationTally struct {
	Confirmations int
	Rejections    int
	Unsure        int
}

// TransitionRule решает, как голоса меняют статус инцидента.
// Ошибка из Next отменяет голосование целиком.
type TransitionRule interface {
	WindowStart(now, statusChangedAt time.Time) time.Time
	Next(current Status, tally VerificationTally) (Status, error)
}

// VerificationResult - инцидент после голосования и статус до него
type VerificationResult struct {
	Incident       *Incident
	PreviousStatus Status
}

// Stats - сводка по инцидентам
type Stats struct {
	ByStatus        map[Status]int `json:"by_status"`
	Total           int            `json:"total"`
	ActiveVerifiers int            `json:"active_verifiers"`
}
