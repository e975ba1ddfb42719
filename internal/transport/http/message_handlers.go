package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapchat/zapchat-server/internal/store"
)

// MessageHandlers provides HTTP handlers for the message store. Clients
// poll these endpoints; realtime delivery goes over the websocket relay
// and is best-effort only.
type MessageHandlers struct {
	store store.Store
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(st store.Store, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		store: st,
		log:   logger,
	}
}

// AddMessageRequest represents the add-message request body.
type AddMessageRequest struct {
	To      int64  `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
}

// MessageResponse represents a persisted message in API responses.
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toMessageResponse(m *store.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Message:    m.Body,
		Type:       m.Type,
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

// AddMessage persists a message from the authenticated user.
// POST /api/messages
func (h *MessageHandlers) AddMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid add message request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg := &store.Message{
		SenderID:   userID,
		ReceiverID: req.To,
		Body:       req.Message,
		Type:       req.Type,
	}
	if err := h.store.SaveMessage(c.Request.Context(), msg); err != nil {
		h.log.Error().Err(err).Int64("sender", userID).Int64("receiver", req.To).Msg("failed to save message")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// ListMessages returns the conversation with the given peer, oldest
// first, and marks the peer's messages to the caller as read.
// GET /api/messages/:peer
func (h *MessageHandlers) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	peerID, err := strconv.ParseInt(c.Param("peer"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid peer id"})
		return
	}

	messages, err := h.store.ListMessagesBetween(c.Request.Context(), userID, peerID)
	if err != nil {
		h.log.Error().Err(err).Int64("user", userID).Int64("peer", peerID).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	if err := h.store.MarkMessagesRead(c.Request.Context(), peerID, userID); err != nil {
		h.log.Warn().Err(err).Int64("user", userID).Int64("peer", peerID).Msg("failed to mark messages read")
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, toMessageResponse(m))
	}

	c.JSON(http.StatusOK, response)
}
