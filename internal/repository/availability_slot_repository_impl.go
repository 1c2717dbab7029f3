package repository

import (
	"context"
	"errors"
	"time"

	"medivuno-api/internal/domain/entity"
	domainRepo "medivuno-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilitySlotRepository struct {
	db *gorm.DB
}

func NewAvailabilitySlotRepository(db *gorm.DB) domainRepo.AvailabilitySlotRepository {
	return &availabilitySlotRepository{db: db}
}

func (r *availabilitySlotRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *availabilitySlotRepository) CreateBatch(ctx context.Context, slots []entity.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(slots, 100).Error
}

func (r *availabilitySlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindUpcomingByDoctor(ctx context.Context, doctorID uuid.UUID, from time.Time, openOnly bool) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	query := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Where("start_time >= ?", from)
	if openOnly {
		query = query.Where("booked = ?", false)
	}
	err := query.Order("start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}

func (r *availabilitySlotRepository) DeleteAllOpenByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("doctor_id = ? AND booked = ?", doctorID, false).
		Delete(&entity.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}
