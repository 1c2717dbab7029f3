package repository

import (
	"context"
	"errors"

	"medivuno-api/internal/domain/entity"
	domainRepo "medivuno-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domainRepo.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) ([]entity.Notification, int64, error) {
	var notifications []entity.Notification
	var total int64

	base := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_archived = ?", userID, archived)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_archived = ?", userID, archived).
		Order("created_at DESC").
		Offset(skip).
		Limit(take).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Save(notification).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) HasReminderFor(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("metadata->>'appointment_id' = ?", appointmentID.String()).
		Where("metadata->>'reminder' = ?", "true").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type notificationSettingsRepository struct {
	db *gorm.DB
}

func NewNotificationSettingsRepository(db *gorm.DB) domainRepo.NotificationSettingsRepository {
	return &notificationSettingsRepository{db: db}
}

func (r *notificationSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	var settings entity.NotificationSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *notificationSettingsRepository) Create(ctx context.Context, settings *entity.NotificationSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *notificationSettingsRepository) Update(ctx context.Context, settings *entity.NotificationSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
