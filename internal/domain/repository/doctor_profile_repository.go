package repository

import (
	"context"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	// Search returns approved doctors with active accounts, optionally
	// filtered by name and specialization.
	Search(ctx context.Context, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error)
	FindByApproval(ctx context.Context, status entity.ApprovalStatus, page, limit int) ([]entity.DoctorProfile, int64, error)
	UpdateApproval(ctx context.Context, userID uuid.UUID, status entity.ApprovalStatus) (int64, error)
}
