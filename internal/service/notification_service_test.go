package service

import (
	"context"
	"testing"
	"time"

	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationRepo struct {
	created     []*entity.Notification
	hasReminder bool
}

func (s *stubNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	notification.ID = uuid.New()
	s.created = append(s.created, notification)
	return nil
}

func (s *stubNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return nil, nil
}

func (s *stubNotificationRepo) FindByUser(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) ([]entity.Notification, int64, error) {
	return nil, 0, nil
}

func (s *stubNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	return nil
}

func (s *stubNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubNotificationRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubNotificationRepo) HasReminderFor(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	return s.hasReminder, nil
}

type stubSettingsRepo struct {
	settings *entity.NotificationSettings
}

func (s *stubSettingsRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	return s.settings, nil
}

func (s *stubSettingsRepo) Create(ctx context.Context, settings *entity.NotificationSettings) error {
	return nil
}

func (s *stubSettingsRepo) Update(ctx context.Context, settings *entity.NotificationSettings) error {
	return nil
}

type stubPublisher struct {
	events []websocket.Event
}

func (s *stubPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	s.events = append(s.events, event)
}

func newNotifierFixture(settings *entity.NotificationSettings) (*NotificationService, *stubNotificationRepo, *stubPublisher) {
	repo := &stubNotificationRepo{}
	publisher := &stubPublisher{}
	notifier := NewNotificationService(logrus.New(), repo, &stubSettingsRepo{settings: settings}, publisher)
	return notifier, repo, publisher
}

func TestNotifyStoresAndPushes(t *testing.T) {
	notifier, repo, publisher := newNotifierFixture(nil)
	userID := uuid.New()

	notification, err := notifier.Notify(context.Background(), userID, entity.NotificationKindAppointment,
		entity.CategoryAppointment, "Appointment Update", "Your appointment is confirmed",
		entity.PriorityHigh, nil)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, notification.UserID)
	assert.Equal(t, entity.PriorityHigh, notification.Priority)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, websocket.EventNewNotification, publisher.events[0].Type)
	assert.Equal(t, notification, publisher.events[0].Data)
}

func TestNotifyFallbacks(t *testing.T) {
	notifier, _, _ := newNotifierFixture(nil)

	// empty category is inferred from the message text, empty title from
	// the category, empty priority defaults to medium
	notification, err := notifier.Notify(context.Background(), uuid.New(), entity.NotificationKindMessage,
		"", "", "You have a new message", "", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.CategoryMessage, notification.Category)
	assert.Equal(t, "New Message", notification.Title)
	assert.Equal(t, entity.PriorityMedium, notification.Priority)
}

func TestNotifyHonorsPushPreference(t *testing.T) {
	settings := entity.DefaultNotificationSettings(uuid.New())
	settings.PushAppointment = false
	notifier, repo, publisher := newNotifierFixture(settings)

	_, err := notifier.Notify(context.Background(), settings.UserID, entity.NotificationKindAppointment,
		entity.CategoryAppointment, "", "Your appointment was moved", entity.PriorityMedium, nil)
	require.NoError(t, err)

	// stored in the feed but not pushed
	require.Len(t, repo.created, 1)
	assert.Empty(t, publisher.events)
}

func TestNotifyPushesWhenSettingsMissing(t *testing.T) {
	notifier, _, publisher := newNotifierFixture(nil)

	_, err := notifier.Notify(context.Background(), uuid.New(), entity.NotificationKindReminder,
		entity.CategoryAppointment, "Reminder", "Appointment tomorrow at 9", entity.PriorityMedium,
		entity.JSON{"start_time": time.Now().Format(time.RFC3339)})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
}

func TestPublishUpdate(t *testing.T) {
	notifier, _, publisher := newNotifierFixture(nil)

	notification := &entity.Notification{ID: uuid.New(), UserID: uuid.New(), IsRead: true}
	notifier.PublishUpdate(websocket.EventNotificationRead, notification)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, websocket.EventNotificationRead, publisher.events[0].Type)
	assert.Equal(t, notification, publisher.events[0].Data)
}
