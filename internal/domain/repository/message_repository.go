package repository

import (
	"context"

	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindConversation returns all messages exchanged between the two users,
	// oldest first.
	FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]entity.Message, error)
	// MarkConversationRead marks every unread message from senderID to
	// recipientID as read.
	MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error)
}
