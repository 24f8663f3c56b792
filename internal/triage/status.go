// Package triage holds the incident status state machine.
//
//	Unverified --K confirmations--> Verifying --K confirmations--> Verified
//	Unverified/Verifying --F rejections--> False
//
// Verified and False are terminal for crowd feedback; only moderators move
// an incident out of them.
package triage

import (
	"time"

	"github.com/shenikar/incident_triage/internal/apperr"
	"github.com/shenikar/incident_triage/internal/models"
)

var ErrTerminalStatus = apperr.New(apperr.KindConflict, "incident status is final and no longer accepts feedback")

// InitialStatus выбирает статус нового инцидента по вердикту валидатора
func InitialStatus(isAuthentic bool) models.Status {
	if isAuthentic {
		return models.StatusVerifying
	}
	return models.StatusUnverified
}

// IsTerminal сообщает, закрыт ли статус для голосования
func IsTerminal(s models.Status) bool {
	return s == models.StatusVerified || s == models.StatusFalse
}

// Policy - правила перехода по голосам пользователей
type Policy struct {
	ConfirmThreshold int
	FalseThreshold   int
	// Window ограничивает давность учитываемых голосов.
	Window time.Duration
}

func DefaultPolicy() Policy {
	return Policy{ConfirmThreshold: 3, FalseThreshold: 3, Window: time.Hour}
}

// Next returns the status that follows current given the votes cast since
// the later of the last status change and now-Window. Rejections are
// checked first.
func (p Policy) Next(current models.Status, tally models.VerificationTally) (models.Status, error) {
	if IsTerminal(current) {
		return current, ErrTerminalStatus
	}
	if !current.Valid() {
		return current, apperr.New(apperr.KindInvalid, "unknown incident status")
	}

	if tally.Rejections >= p.FalseThreshold {
		return models.StatusFalse, nil
	}
	if tally.Confirmations >= p.ConfirmThreshold {
		if current == models.StatusUnverified {
			return models.StatusVerifying, nil
		}
		return models.StatusVerified, nil
	}
	return current, nil
}

// WindowStart returns the instant after which votes count toward a
// transition. The vote that caused the last change carries that instant
// and is excluded.
func (p Policy) WindowStart(now, statusChangedAt time.Time) time.Time {
	start := now.Add(-p.Window)
	if statusChangedAt.After(start) {
		return statusChangedAt
	}
	return start
}
