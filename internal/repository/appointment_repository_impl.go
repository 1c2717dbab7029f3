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

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// claimSlot flips booked false -> true for the slot. The WHERE guard makes
// concurrent claims lose with zero rows affected.
func claimSlot(tx *gorm.DB, slotID uuid.UUID) error {
	result := tx.Model(&entity.AvailabilitySlot{}).
		Where("id = ? AND booked = ?", slotID, false).
		Update("booked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrSlotUnavailable
	}
	return nil
}

func releaseSlot(tx *gorm.DB, slotID uuid.UUID) error {
	return tx.Model(&entity.AvailabilitySlot{}).
		Where("id = ?", slotID).
		Update("booked", false).Error
}

func (r *appointmentRepository) Book(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimSlot(tx, appointment.SlotID); err != nil {
			return err
		}
		return tx.Create(appointment).Error
	})
}

func (r *appointmentRepository) Reschedule(ctx context.Context, appointment *entity.Appointment, oldSlotID, newSlotID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := claimSlot(tx, newSlotID); err != nil {
			return err
		}
		if err := releaseSlot(tx, oldSlotID); err != nil {
			return err
		}
		return tx.Omit("Doctor", "Patient").Save(appointment).Error
	})
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Doctor", "Patient").Save(appointment).Error; err != nil {
			return err
		}
		if appointment.Status == entity.AppointmentCancelled {
			return releaseSlot(tx, appointment.SlotID)
		}
		return nil
	})
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Where("doctor_id = ?", doctorID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindStartingBetween(ctx context.Context, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor.User").Preload("Patient.User").
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("status IN ?", []entity.AppointmentStatus{entity.AppointmentPending, entity.AppointmentConfirmed}).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
