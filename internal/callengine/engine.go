package callengine

// JoinInfo contains the credentials a client needs to join the media
// room for a signaled call.
type JoinInfo struct {
	URL      string `json:"url"`       // media server WebSocket URL
	Token    string `json:"token"`     // access token for the media server
	RoomName string `json:"room_name"` // media room name
	Identity string `json:"identity"`  // user identity inside the room
}

// TokenProvider mints join credentials for call rooms. The relay only
// forwards signaling; actual media flows client-to-media-server using
// these credentials.
type TokenProvider interface {
	JoinToken(roomID string, userID int64, displayName string) (*JoinInfo, error)
}
