package http

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapchat/zapchat-server/internal/auth"
	"github.com/zapchat/zapchat-server/internal/callengine"
	"github.com/zapchat/zapchat-server/internal/config"
	"github.com/zapchat/zapchat-server/internal/core"
	"github.com/zapchat/zapchat-server/internal/store/sqlite"
)

type staticTokens struct{}

func (staticTokens) JoinToken(roomID string, userID int64, displayName string) (*callengine.JoinInfo, error) {
	return &callengine.JoinInfo{
		URL:      "ws://media.test",
		Token:    "test-token",
		RoomName: "room-" + roomID,
		Identity: fmt.Sprintf("user-%d", userID),
	}, nil
}

// newTestServer spins up the full HTTP surface over an in-memory store
// with a running relay hub.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "zapchat-test",
		Audience: "zapchat-test",
		TTL:      time.Hour,
	}
	authService := auth.NewService(st, jwtConfig)

	hub := core.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	logger := zerolog.Nop()
	server := NewServer(hub, authService, st, staticTokens{}, config.Config{}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}
