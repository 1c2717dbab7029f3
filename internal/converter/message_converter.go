package converter

import (
	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/domain/entity"
)

// MessageToResponse converts a Message entity to its DTO
func MessageToResponse(message *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Body:        message.Body,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}
}

// MessagesToResponses converts a slice of Message entities
func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = MessageToResponse(&messages[i])
	}
	return responses
}
