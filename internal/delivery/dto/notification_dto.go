package dto

import (
	"time"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type NotificationResponse struct {
	ID         uuid.UUID   `json:"id"`
	Category   string      `json:"category"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	IsRead     bool        `json:"is_read"`
	IsArchived bool        `json:"is_archived"`
	Priority   string      `json:"priority"`
	Metadata   entity.JSON `json:"metadata,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NotificationListResponse is one page of the feed. Skip and Take echo the
// offsets the page was fetched with so clients can request the next page.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	Skip          int                    `json:"skip"`
	Take          int                    `json:"take"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
