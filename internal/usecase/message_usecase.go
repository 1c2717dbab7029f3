package usecase

import (
	"context"
	"errors"

	"medivuno-api/internal/converter"
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
	"medivuno-api/internal/domain/repository"
	"medivuno-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfMessage       = errors.New("cannot message yourself")
)

type MessageUsecase interface {
	Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	// GetConversation returns the full thread with the other user, oldest
	// first, and marks their messages to the caller as read.
	GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.ConversationResponse, error)
}

type messageUsecase struct {
	log         *logrus.Logger
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    *service.NotificationService
}

func NewMessageUsecase(
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier *service.NotificationService,
) MessageUsecase {
	return &messageUsecase{
		log:         log,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

func (u *messageUsecase) Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if senderID == req.RecipientID {
		return nil, ErrSelfMessage
	}

	recipient, err := u.userRepo.FindByID(ctx, req.RecipientID)
	if err != nil {
		u.log.Warnf("Failed to find recipient: %+v", err)
		return nil, err
	}
	if recipient == nil || !recipient.IsActive {
		return nil, ErrRecipientNotFound
	}

	message := &entity.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}

	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	u.notifier.Notify(ctx, req.RecipientID, entity.NotificationKindMessage, entity.CategoryMessage,
		"", "You have a new message", entity.PriorityMedium,
		entity.JSON{"message_id": message.ID.String(), "sender_id": senderID.String()},
	)

	response := converter.MessageToResponse(message)
	return &response, nil
}

func (u *messageUsecase) GetConversation(ctx context.Context, userID, otherID uuid.UUID) (*dto.ConversationResponse, error) {
	messages, err := u.messageRepo.FindConversation(ctx, userID, otherID)
	if err != nil {
		u.log.Warnf("Failed to load conversation: %+v", err)
		return nil, err
	}

	// Opening the thread reads the other side's messages.
	if _, err := u.messageRepo.MarkConversationRead(ctx, userID, otherID); err != nil {
		u.log.Warnf("Failed to mark conversation read: %+v", err)
	}

	return &dto.ConversationResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}
