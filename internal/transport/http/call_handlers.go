package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapchat/zapchat-server/internal/callengine"
	"github.com/zapchat/zapchat-server/internal/store"
)

// CallHandlers provides HTTP handlers for call media credentials. The
// room id comes from the signaling exchange over the relay; either
// side fetches a join token for it here.
type CallHandlers struct {
	tokens callengine.TokenProvider
	store  store.Store
	log    *zerolog.Logger
}

// NewCallHandlers creates a new call handlers instance.
func NewCallHandlers(tokens callengine.TokenProvider, st store.Store, logger *zerolog.Logger) *CallHandlers {
	return &CallHandlers{
		tokens: tokens,
		store:  st,
		log:    logger,
	}
}

// Token mints media-room join credentials for the authenticated user.
// GET /api/calls/token/:roomId
func (h *CallHandlers) Token(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	roomID := c.Param("roomId")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "room id is required"})
		return
	}

	displayName := ""
	if user, err := h.store.GetUserByID(c.Request.Context(), userID); err == nil {
		displayName = user.Name
	}

	info, err := h.tokens.JoinToken(roomID, userID, displayName)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Int64("user_id", userID).Msg("failed to mint join token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, info)
}
