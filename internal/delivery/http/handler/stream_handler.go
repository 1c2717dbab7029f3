package handler

import (
	"net/http"

	"medivuno-api/internal/delivery/http/middleware"
	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/pkg/response"
)

// StreamHandler bridges the authenticated HTTP layer and the websocket push
// channel.
type StreamHandler struct {
	wsHandler *websocket.Handler
}

func NewStreamHandler(wsHandler *websocket.Handler) *StreamHandler {
	return &StreamHandler{wsHandler: wsHandler}
}

// Connect upgrades the request to a websocket joined to the caller's room
func (h *StreamHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.wsHandler.Connect(w, r, userID)
}
