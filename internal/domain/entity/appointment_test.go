package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentPending, AppointmentConfirmed, true},
		{AppointmentPending, AppointmentCancelled, true},
		{AppointmentPending, AppointmentCompleted, false},
		{AppointmentConfirmed, AppointmentCancelled, true},
		{AppointmentConfirmed, AppointmentCompleted, true},
		{AppointmentConfirmed, AppointmentPending, false},
		{AppointmentCancelled, AppointmentConfirmed, false},
		{AppointmentCancelled, AppointmentPending, false},
		{AppointmentCompleted, AppointmentCancelled, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		assert.Equal(t, tt.want, a.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
