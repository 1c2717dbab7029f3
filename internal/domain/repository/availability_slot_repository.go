package repository

import (
	"context"
	"time"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AvailabilitySlotRepository interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) error
	CreateBatch(ctx context.Context, slots []entity.AvailabilitySlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	// FindUpcomingByDoctor returns the doctor's slots starting at or after
	// from, ordered by start time. When openOnly is set, booked slots are
	// excluded.
	FindUpcomingByDoctor(ctx context.Context, doctorID uuid.UUID, from time.Time, openOnly bool) ([]entity.AvailabilitySlot, error)
	// FindByDoctorBetween returns the doctor's slots intersecting [from, to).
	FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilitySlot, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// DeleteAllOpenByDoctor removes every unbooked slot owned by the doctor.
	DeleteAllOpenByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error)
}
