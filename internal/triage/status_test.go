package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/incident_triage/internal/models"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, models.StatusVerifying, InitialStatus(true))
	assert.Equal(t, models.StatusUnverified, InitialStatus(false))
}

func TestPolicyNext(t *testing.T) {
	p := Policy{ConfirmThreshold: 3, FalseThreshold: 2, Window: time.Hour}

	tests := []struct {
		name    string
		current models.Status
		tally   models.VerificationTally
		want    models.Status
	}{
		{"verifying below threshold", models.StatusVerifying, models.VerificationTally{Confirmations: 2}, models.StatusVerifying},
		{"verifying confirmed", models.StatusVerifying, models.VerificationTally{Confirmations: 3}, models.StatusVerified},
		{"unverified promoted", models.StatusUnverified, models.VerificationTally{Confirmations: 3}, models.StatusVerifying},
		{"unverified rejected", models.StatusUnverified, models.VerificationTally{Rejections: 2}, models.StatusFalse},
		{"verifying rejected", models.StatusVerifying, models.VerificationTally{Rejections: 2, Confirmations: 1}, models.StatusFalse},
		{"rejections win ties", models.StatusVerifying, models.VerificationTally{Rejections: 2, Confirmations: 3}, models.StatusFalse},
		{"unsure votes never move", models.StatusVerifying, models.VerificationTally{Unsure: 10}, models.StatusVerifying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Next(tt.current, tt.tally)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyNext_Terminal(t *testing.T) {
	p := DefaultPolicy()

	for _, s := range []models.Status{models.StatusVerified, models.StatusFalse} {
		got, err := p.Next(s, models.VerificationTally{Rejections: 10})
		require.ErrorIs(t, err, ErrTerminalStatus)
		assert.Equal(t, s, got)
	}
}

func TestPolicyNext_UnknownStatus(t *testing.T) {
	_, err := DefaultPolicy().Next("active", models.VerificationTally{})
	require.Error(t, err)
}

func TestWindowStart(t *testing.T) {
	p := Policy{Window: time.Hour}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	recentChange := now.Add(-10 * time.Minute)
	assert.Equal(t, recentChange, p.WindowStart(now, recentChange))

	oldChange := now.Add(-5 * time.Hour)
	assert.Equal(t, now.Add(-time.Hour), p.WindowStart(now, oldChange))
}
