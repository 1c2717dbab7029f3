package converter

import (
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its DTO
func NotificationToResponse(notification *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:         notification.ID,
		Category:   string(notification.Category),
		Title:      notification.Title,
		Message:    notification.Message,
		IsRead:     notification.IsRead,
		IsArchived: notification.IsArchived,
		Priority:   string(notification.Priority),
		Metadata:   notification.Metadata,
		CreatedAt:  notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = NotificationToResponse(&notifications[i])
	}
	return responses
}

// SettingsToPayload converts a NotificationSettings entity to its DTO
func SettingsToPayload(settings *entity.NotificationSettings) dto.NotificationSettingsPayload {
	return dto.NotificationSettingsPayload{
		EmailAppointment: settings.EmailAppointment,
		EmailMessage:     settings.EmailMessage,
		EmailReminder:    settings.EmailReminder,
		EmailSystem:      settings.EmailSystem,
		PushAppointment:  settings.PushAppointment,
		PushMessage:      settings.PushMessage,
		PushReminder:     settings.PushReminder,
		PushSystem:       settings.PushSystem,
		SMSAppointment:   settings.SMSAppointment,
		SMSMessage:       settings.SMSMessage,
		SMSReminder:      settings.SMSReminder,
		SMSSystem:        settings.SMSSystem,
	}
}

// PayloadToSettings applies a settings payload onto the user's settings row
func PayloadToSettings(payload *dto.NotificationSettingsPayload, settings *entity.NotificationSettings) {
	settings.EmailAppointment = payload.EmailAppointment
	settings.EmailMessage = payload.EmailMessage
	settings.EmailReminder = payload.EmailReminder
	settings.EmailSystem = payload.EmailSystem
	settings.PushAppointment = payload.PushAppointment
	settings.PushMessage = payload.PushMessage
	settings.PushReminder = payload.PushReminder
	settings.PushSystem = payload.PushSystem
	settings.SMSAppointment = payload.SMSAppointment
	settings.SMSMessage = payload.SMSMessage
	settings.SMSReminder = payload.SMSReminder
	settings.SMSSystem = payload.SMSSystem
}
