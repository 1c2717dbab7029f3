package repository

import (
	"context"
	"errors"
	"time"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotUnavailable is returned by Book and Reschedule when the target slot
// no longer exists or was claimed by another request.
var ErrSlotUnavailable = errors.New("slot unavailable")

type AppointmentRepository interface {
	// Book claims the appointment's slot and inserts the appointment in one
	// transaction. The claim is guarded: it only succeeds if the slot is
	// still unbooked.
	Book(ctx context.Context, appointment *entity.Appointment) error
	// Reschedule moves the appointment onto newSlotID, releasing oldSlotID,
	// all inside one transaction. On any failure nothing changes and the
	// original appointment survives.
	Reschedule(ctx context.Context, appointment *entity.Appointment, oldSlotID, newSlotID uuid.UUID) error
	// UpdateStatus persists a status change; a transition to cancelled also
	// releases the backing slot within the same transaction.
	UpdateStatus(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindStartingBetween returns pending and confirmed appointments whose
	// start time falls inside [from, to).
	FindStartingBetween(ctx context.Context, from, to time.Time) ([]entity.Appointment, error)
}
