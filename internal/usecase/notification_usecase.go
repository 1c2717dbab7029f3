package usecase

import (
	"context"
	"errors"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrNotificationNotFound = errors.New("notification not found")

const (
	defaultFeedTake = 20
	maxFeedTake     = 100
)

type NotificationUsecase interface {
	// GetFeed pages through the caller's feed, newest first, split by
	// archived state.
	GetFeed(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (*dto.MarkAllReadResponse, error)
	Archive(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationUsecase struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	notifier         *service.NotificationService
}

func NewNotificationUsecase(
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	notifier *service.NotificationService,
) NotificationUsecase {
	return &notificationUsecase{
		log:              log,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

func (u *notificationUsecase) GetFeed(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) (*dto.NotificationListResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = defaultFeedTake
	}
	if take > maxFeedTake {
		take = maxFeedTake
	}

	notifications, total, err := u.notificationRepo.FindByUser(ctx, userID, archived, skip, take)
	if err != nil {
		u.log.Warnf("Failed to load notification feed: %+v", err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         total,
		Skip:          skip,
		Take:          take,
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error) {
	notification, err := u.owned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := u.notificationRepo.Update(ctx, notification); err != nil {
			u.log.Warnf("Failed to mark notification read: %+v", err)
			return nil, err
		}
		u.notifier.PublishUpdate(websocket.EventNotificationRead, notification)
	}

	response := converter.NotificationToResponse(notification)
	return &response, nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) (*dto.MarkAllReadResponse, error) {
	updated, err := u.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to mark all notifications read: %+v", err)
		return nil, err
	}

	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (u *notificationUsecase) Archive(ctx context.Context, userID, notificationID uuid.UUID) (*dto.NotificationResponse, error) {
	notification, err := u.owned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.IsArchived {
		// Archiving also marks the item read so the unread badge agrees
		// with the visible inbox.
		notification.IsArchived = true
		notification.IsRead = true
		if err := u.notificationRepo.Update(ctx, notification); err != nil {
			u.log.Warnf("Failed to archive notification: %+v", err)
			return nil, err
		}
		u.notifier.PublishUpdate(websocket.EventNotificationArchived, notification)
	}

	response := converter.NotificationToResponse(notification)
	return &response, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	if _, err := u.owned(ctx, userID, notificationID); err != nil {
		return err
	}

	deleted, err := u.notificationRepo.Delete(ctx, notificationID)
	if err != nil {
		u.log.Warnf("Failed to delete notification: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (u *notificationUsecase) owned(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error) {
	notification, err := u.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return nil, err
	}
	if notification == nil || notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}
