package repository

import (
	"context"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	// FindByUser pages through the user's feed with skip/take offsets,
	// newest first, split by archived state.
	FindByUser(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) ([]entity.Notification, int64, error)
	Update(ctx context.Context, notification *entity.Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// HasReminderFor reports whether a reminder notification was already
	// emitted for the appointment.
	HasReminderFor(ctx context.Context, appointmentID uuid.UUID) (bool, error)
}

type NotificationSettingsRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)
	Create(ctx context.Context, settings *entity.NotificationSettings) error
	Update(ctx context.Context, settings *entity.NotificationSettings) error
}
