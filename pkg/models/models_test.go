package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadIsClosed(t *testing.T) {
	tests := []struct {
		name       string
		status     LeadStatus
		caseAction LeadStatus
		want       bool
	}{
		{"open", LeadPublished, LeadPending, false},
		{"status closed", LeadClosed, LeadPending, true},
		{"case action closed", LeadReadyForHelp, LeadClosed, true},
		{"case action unset", LeadPartial, "", false},
		{"on hold is still open", LeadOnHold, LeadOnHold, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Lead{Status: tt.status, CaseAction: tt.caseAction}
			assert.Equal(t, tt.want, l.IsClosed())
		})
	}
}

func TestDonationStatusTransitions(t *testing.T) {
	assert.True(t, PENDING_VERIFICATION.CanTransitionTo(VERIFIED))
	assert.True(t, PENDING_VERIFICATION.CanTransitionTo(FAILED))
	assert.True(t, ALLOCATED.CanTransitionTo(VERIFIED))
	assert.False(t, FAILED.CanTransitionTo(VERIFIED))
	assert.False(t, VERIFIED.CanTransitionTo(PENDING_VERIFICATION))
}
