package usecase

import (
	"context"
	"testing"

	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	usecase   NotificationUsecase
	repo      *fakeNotificationRepo
	publisher *fakePublisher
	userID    uuid.UUID
}

func newNotificationFixture() *notificationFixture {
	log := logrus.New()
	f := &notificationFixture{
		repo:      newFakeNotificationRepo(),
		publisher: &fakePublisher{},
		userID:    uuid.New(),
	}
	notifier := service.NewNotificationService(log, f.repo, newFakeSettingsRepo(), f.publisher)
	f.usecase = NewNotificationUsecase(log, f.repo, notifier)
	return f
}

func (f *notificationFixture) addNotification(userID uuid.UUID) *entity.Notification {
	notification := &entity.Notification{
		ID:       uuid.New(),
		UserID:   userID,
		Category: entity.CategoryInfo,
		Title:    "Notification",
		Message:  "hello",
	}
	f.repo.byID[notification.ID] = notification
	return notification
}

func TestGetFeedPagingDefaults(t *testing.T) {
	f := newNotificationFixture()

	feed, err := f.usecase.GetFeed(context.Background(), f.userID, false, -5, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, f.repo.lastSkip)
	assert.Equal(t, defaultFeedTake, f.repo.lastTake)
	assert.Equal(t, 0, feed.Skip)
	assert.Equal(t, defaultFeedTake, feed.Take)
	assert.NotNil(t, feed.Notifications)
}

func TestGetFeedTakeCapped(t *testing.T) {
	f := newNotificationFixture()

	_, err := f.usecase.GetFeed(context.Background(), f.userID, true, 10, 500)
	require.NoError(t, err)

	assert.True(t, f.repo.lastArchived)
	assert.Equal(t, 10, f.repo.lastSkip)
	assert.Equal(t, maxFeedTake, f.repo.lastTake)
}

func TestMarkReadPublishesUpdate(t *testing.T) {
	f := newNotificationFixture()
	notification := f.addNotification(f.userID)

	result, err := f.usecase.MarkRead(context.Background(), f.userID, notification.ID)
	require.NoError(t, err)

	assert.True(t, result.IsRead)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, websocket.EventNotificationRead, f.publisher.events[0].Type)
	assert.Equal(t, f.userID, f.publisher.users[0])
}

func TestMarkReadIdempotent(t *testing.T) {
	f := newNotificationFixture()
	notification := f.addNotification(f.userID)
	notification.IsRead = true

	_, err := f.usecase.MarkRead(context.Background(), f.userID, notification.ID)
	require.NoError(t, err)

	// already-read items do not re-emit events or hit the store
	assert.Empty(t, f.publisher.events)
	assert.Empty(t, f.repo.updated)
}

func TestMarkReadForeignNotification(t *testing.T) {
	f := newNotificationFixture()
	notification := f.addNotification(uuid.New())

	_, err := f.usecase.MarkRead(context.Background(), f.userID, notification.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestArchiveMarksReadToo(t *testing.T) {
	f := newNotificationFixture()
	notification := f.addNotification(f.userID)

	result, err := f.usecase.Archive(context.Background(), f.userID, notification.ID)
	require.NoError(t, err)

	assert.True(t, result.IsArchived)
	assert.True(t, result.IsRead)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, websocket.EventNotificationArchived, f.publisher.events[0].Type)
}

func TestDeleteForeignNotification(t *testing.T) {
	f := newNotificationFixture()
	notification := f.addNotification(uuid.New())

	err := f.usecase.Delete(context.Background(), f.userID, notification.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
