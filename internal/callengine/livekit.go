package callengine

import (
	"fmt"
	"time"

	lkauth "github.com/livekit/protocol/auth"
)

// LiveKit implements TokenProvider against a LiveKit deployment.
type LiveKit struct {
	apiKey    string
	apiSecret string
	wsURL     string
}

// NewLiveKit creates a LiveKit token provider.
func NewLiveKit(apiKey, apiSecret, wsURL string) *LiveKit {
	return &LiveKit{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		wsURL:     wsURL,
	}
}

// JoinToken mints an access token scoped to the call's room. LiveKit
// creates rooms on demand when the first participant joins, so no
// provisioning call is needed here.
func (e *LiveKit) JoinToken(roomID string, userID int64, displayName string) (*JoinInfo, error) {
	if roomID == "" {
		return nil, fmt.Errorf("room id is required")
	}

	roomName := "zapchat-call-" + roomID
	identity := fmt.Sprintf("user-%d", userID)

	at := lkauth.NewAccessToken(e.apiKey, e.apiSecret)
	grant := &lkauth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}
	at.SetVideoGrant(grant).
		SetIdentity(identity).
		SetName(displayName).
		SetValidFor(time.Hour)

	token, err := at.ToJWT()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &JoinInfo{
		URL:      e.wsURL,
		Token:    token,
		RoomName: roomName,
		Identity: identity,
	}, nil
}

// Ensure LiveKit implements TokenProvider.
var _ TokenProvider = (*LiveKit)(nil)
