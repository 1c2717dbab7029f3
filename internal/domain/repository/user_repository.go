package repository

import (
	"context"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	// CreateWithPatientProfile inserts the user and its patient profile in
	// one transaction.
	CreateWithPatientProfile(ctx context.Context, user *entity.User, profile *entity.PatientProfile) error
	// CreateWithDoctorProfile inserts the user and its doctor profile in
	// one transaction.
	CreateWithDoctorProfile(ctx context.Context, user *entity.User, profile *entity.DoctorProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	FindAllPaginated(ctx context.Context, page, limit int) ([]entity.User, int64, error)
	UpdateActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
}
