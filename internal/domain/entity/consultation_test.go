package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsultationRequest_CanDispose(t *testing.T) {
	tests := []struct {
		name        string
		state       ConsultationState
		disposition Disposition
		want        bool
	}{
		{"reported_pending", ConsultationStateReported, DispositionPending, true},
		{"submitted", ConsultationStateSubmitted, DispositionPending, false},
		{"failed", ConsultationStateFailed, DispositionPending, false},
		{"already_approved", ConsultationStateReported, DispositionApproved, false},
		{"already_rejected", ConsultationStateReported, DispositionRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ConsultationRequest{State: tt.state, Disposition: tt.disposition}
			assert.Equal(t, tt.want, req.CanDispose())
		})
	}
}
