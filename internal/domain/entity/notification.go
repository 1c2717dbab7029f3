package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NotificationPriority represents how prominently a notification is shown
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// NotificationCategory is the server-supplied display taxonomy
type NotificationCategory string

const (
	CategoryAppointment  NotificationCategory = "appointment"
	CategoryMessage      NotificationCategory = "message"
	CategoryPrescription NotificationCategory = "prescription"
	CategorySystem       NotificationCategory = "system"
	CategoryInfo         NotificationCategory = "info"
)

// Notification represents a server-owned item in a user's feed
type Notification struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Category   NotificationCategory `gorm:"type:varchar(20);not null;default:'info';index" json:"category"`
	Title      string               `gorm:"type:varchar(255);not null" json:"title"`
	Message    string               `gorm:"type:text;not null" json:"message"`
	IsRead     bool                 `gorm:"not null;default:false;index" json:"is_read"`
	IsArchived bool                 `gorm:"not null;default:false;index" json:"is_archived"`
	Priority   NotificationPriority `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Metadata   JSON                 `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time            `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// LegacyCategory infers a category by scanning the message text. It exists
// only for producers that predate the explicit category column; matching
// order is part of the compatibility contract and must not be reordered.
func LegacyCategory(message string) NotificationCategory {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "appointment"):
		return CategoryAppointment
	case strings.Contains(m, "prescription"):
		return CategoryPrescription
	case strings.Contains(m, "message"):
		return CategoryMessage
	case strings.Contains(m, "system"):
		return CategorySystem
	default:
		return CategoryInfo
	}
}

// CategoryTitle returns the default feed title for a category.
func CategoryTitle(c NotificationCategory) string {
	switch c {
	case CategoryAppointment:
		return "Appointment Update"
	case CategoryMessage:
		return "New Message"
	case CategoryPrescription:
		return "Prescription"
	case CategorySystem:
		return "System Notice"
	default:
		return "Notification"
	}
}
