package repository

import (
	"context"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
	Update(ctx context.Context, profile *entity.PatientProfile) error
}
