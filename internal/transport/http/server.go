package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zapchat/zapchat-server/internal/auth"
	"github.com/zapchat/zapchat-server/internal/callengine"
	"github.com/zapchat/zapchat-server/internal/config"
	"github.com/zapchat/zapchat-server/internal/core"
	"github.com/zapchat/zapchat-server/internal/store"
)

// NewServer builds the HTTP server: health check, websocket relay
// endpoint, and the REST surface for auth, messages, and call tokens.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, tokens callengine.TokenProvider, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	apiHandlers := NewAPIHandlers(authService, st, logger)
	msgHandlers := NewMessageHandlers(st, logger)
	callHandlers := NewCallHandlers(tokens, st, logger)

	api := router.Group("/api")
	api.POST("/auth/register", apiHandlers.Register)
	api.POST("/auth/login", apiHandlers.Login)

	authed := api.Group("", AuthMiddleware(authService, logger))
	authed.GET("/auth/me", apiHandlers.Me)
	authed.POST("/auth/onboard", apiHandlers.Onboard)
	authed.GET("/auth/contacts", apiHandlers.Contacts)
	authed.POST("/messages", msgHandlers.AddMessage)
	authed.GET("/messages/:peer", msgHandlers.ListMessages)
	authed.GET("/calls/token/:roomId", callHandlers.Token)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
