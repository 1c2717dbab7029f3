package repository

import (
	"context"
	"errors"

	"medivuno-api/internal/domain/entity"
	domainRepo "medivuno-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Omit("User").Save(profile).Error
}

func (r *doctorProfileRepository) Search(ctx context.Context, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true).
		Where("doctor_profiles.approval_status = ?", entity.ApprovalApproved)

	if filter != nil {
		if filter.Name != "" {
			query = query.Where("users.full_name ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	err := query.Preload("User").Order("users.full_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindByApproval(ctx context.Context, status entity.ApprovalStatus, page, limit int) ([]entity.DoctorProfile, int64, error) {
	var profiles []entity.DoctorProfile
	var total int64

	base := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).Where("approval_status = ?", status)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("approval_status = ?", status).
		Order("user_id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *doctorProfileRepository) UpdateApproval(ctx context.Context, userID uuid.UUID, status entity.ApprovalStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.DoctorProfile{}).
		Where("user_id = ?", userID).
		Update("approval_status", status)
	return result.RowsAffected, result.Error
}
