package entity

import (
	"github.com/google/uuid"
)

// Notification kinds used for per-user channel preferences
const (
	NotificationKindAppointment = "appointment"
	NotificationKindMessage     = "message"
	NotificationKindReminder    = "reminder"
	NotificationKindSystem      = "system"
)

// NotificationSettings holds a user's channel preferences: each kind of
// notification can be toggled per delivery channel. Email and SMS columns
// only gate what downstream transports are allowed to send; the push columns
// gate the live websocket channel.
type NotificationSettings struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	EmailAppointment bool `gorm:"not null;default:true" json:"email_appointment"`
	EmailMessage     bool `gorm:"not null;default:true" json:"email_message"`
	EmailReminder    bool `gorm:"not null;default:true" json:"email_reminder"`
	EmailSystem      bool `gorm:"not null;default:true" json:"email_system"`

	PushAppointment bool `gorm:"not null;default:true" json:"push_appointment"`
	PushMessage     bool `gorm:"not null;default:true" json:"push_message"`
	PushReminder    bool `gorm:"not null;default:true" json:"push_reminder"`
	PushSystem      bool `gorm:"not null;default:true" json:"push_system"`

	SMSAppointment bool `gorm:"not null;default:false" json:"sms_appointment"`
	SMSMessage     bool `gorm:"not null;default:false" json:"sms_message"`
	SMSReminder    bool `gorm:"not null;default:false" json:"sms_reminder"`
	SMSSystem      bool `gorm:"not null;default:false" json:"sms_system"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}

// DefaultNotificationSettings returns the settings row created on first read.
func DefaultNotificationSettings(userID uuid.UUID) *NotificationSettings {
	return &NotificationSettings{
		UserID:           userID,
		EmailAppointment: true,
		EmailMessage:     true,
		EmailReminder:    true,
		EmailSystem:      true,
		PushAppointment:  true,
		PushMessage:      true,
		PushReminder:     true,
		PushSystem:       true,
	}
}

// PushEnabled reports whether live push is allowed for the given kind.
func (s *NotificationSettings) PushEnabled(kind string) bool {
	switch kind {
	case NotificationKindAppointment:
		return s.PushAppointment
	case NotificationKindMessage:
		return s.PushMessage
	case NotificationKindReminder:
		return s.PushReminder
	case NotificationKindSystem:
		return s.PushSystem
	default:
		return true
	}
}
