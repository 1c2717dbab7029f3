package service

import (
	"context"

	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Publisher pushes events onto a user's live channel.
type Publisher interface {
	Publish(userID uuid.UUID, event websocket.Event)
}

// NotificationService persists feed notifications and fans them out over the
// push channel, honoring the recipient's per-kind preferences.
type NotificationService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	settingsRepo     repository.NotificationSettingsRepository
	publisher        Publisher
}

func NewNotificationService(
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	settingsRepo repository.NotificationSettingsRepository,
	publisher Publisher,
) *NotificationService {
	return &NotificationService{
		log:              log,
		notificationRepo: notificationRepo,
		settingsRepo:     settingsRepo,
		publisher:        publisher,
	}
}

// Notify stores a notification for the user and, when the user's push
// preference for kind allows it, emits a newNotification event. An empty
// category falls back to the legacy message-text inference; an empty title
// falls back to the category default.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind string, category entity.NotificationCategory, title, message string, priority entity.NotificationPriority, metadata entity.JSON) (*entity.Notification, error) {
	if category == "" {
		category = entity.LegacyCategory(message)
	}
	if title == "" {
		title = entity.CategoryTitle(category)
	}
	if priority == "" {
		priority = entity.PriorityMedium
	}

	notification := &entity.Notification{
		UserID:   userID,
		Category: category,
		Title:    title,
		Message:  message,
		Priority: priority,
		Metadata: metadata,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}

	if s.pushAllowed(ctx, userID, kind) {
		s.publisher.Publish(userID, websocket.Event{
			Type: websocket.EventNewNotification,
			Data: notification,
		})
	}

	return notification, nil
}

// PublishUpdate emits a read/archive state-change event carrying the updated
// notification, so feeds replace the item in place.
func (s *NotificationService) PublishUpdate(eventType string, notification *entity.Notification) {
	s.publisher.Publish(notification.UserID, websocket.Event{
		Type: eventType,
		Data: notification,
	})
}

func (s *NotificationService) pushAllowed(ctx context.Context, userID uuid.UUID, kind string) bool {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Warnf("Failed to load notification settings: %+v", err)
		return true
	}
	if settings == nil {
		return true
	}
	return settings.PushEnabled(kind)
}
