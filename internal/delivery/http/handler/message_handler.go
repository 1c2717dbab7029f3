package handler

import (
	"encoding/json"
	"net/http"

	"medivuno-api/internal/delivery/dto"
	"medivuno-api/internal/delivery/http/middleware"
	"medivuno-api/internal/usecase"
	"medivuno-api/pkg/response"
	"medivuno-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), senderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecipientNotFound:
			response.NotFound(w, "Recipient not found")
		case usecase.ErrSelfMessage:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetConversation returns the thread with another user and marks their
// messages read
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	otherID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	conversation, err := h.messageUsecase.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		response.InternalServerError(w, "Failed to load conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", conversation)
}
