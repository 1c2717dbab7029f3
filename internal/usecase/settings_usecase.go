package usecase

import (
	"context"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SettingsUsecase interface {
	GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*dto.NotificationSettingsPayload, error)
	UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, req *dto.NotificationSettingsPayload) (*dto.NotificationSettingsPayload, error)
}

type settingsUsecase struct {
	log          *logrus.Logger
	settingsRepo repository.NotificationSettingsRepository
}

func NewSettingsUsecase(log *logrus.Logger, settingsRepo repository.NotificationSettingsRepository) SettingsUsecase {
	return &settingsUsecase{
		log:          log,
		settingsRepo: settingsRepo,
	}
}

func (u *settingsUsecase) GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*dto.NotificationSettingsPayload, error) {
	settings, err := u.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload := converter.SettingsToPayload(settings)
	return &payload, nil
}

func (u *settingsUsecase) UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, req *dto.NotificationSettingsPayload) (*dto.NotificationSettingsPayload, error) {
	settings, err := u.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	converter.PayloadToSettings(req, settings)
	if err := u.settingsRepo.Update(ctx, settings); err != nil {
		u.log.Warnf("Failed to update notification settings: %+v", err)
		return nil, err
	}

	payload := converter.SettingsToPayload(settings)
	return &payload, nil
}

// getOrCreate lazily provisions the default settings row on first access so
// every user always has one.
func (u *settingsUsecase) getOrCreate(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	settings, err := u.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load notification settings: %+v", err)
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = entity.DefaultNotificationSettings(userID)
	if err := u.settingsRepo.Create(ctx, settings); err != nil {
		u.log.Warnf("Failed to create notification settings: %+v", err)
		return nil, err
	}
	return settings, nil
}
