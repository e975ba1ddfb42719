package proto

import (
	"encoding/json"
	"fmt"
)

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Event names carried on the wire. Kept verbatim for compatibility
// with existing clients, including the asymmetric return-address
// fields on reject (from) and accept (id).
const (
	InboundAddUser            = "add-user"
	InboundSignout            = "signout"
	InboundSendMsg            = "send-msg"
	InboundOutgoingVoiceCall  = "outgoing-voice-call"
	InboundOutgoingVideoCall  = "outgoing-video-call"
	InboundRejectVoiceCall    = "reject-voice-call"
	InboundRejectVideoCall    = "reject-video-call"
	InboundAcceptIncomingCall = "accept-incoming-call"

	OutboundMsgReceive        = "msg-receive"
	OutboundIncomingVoiceCall = "incoming-voice-call"
	OutboundIncomingVideoCall = "incoming-video-call"
	OutboundVoiceCallRejected = "voice-call-rejected"
	OutboundVideoCallRejected = "video-call-rejected"
	OutboundAcceptCall        = "accept-call"
	OutboundOnlineUsers       = "online-users"
)

// UserID is an opaque durable user identity. The reference client
// sends its numeric database id, so a bare JSON number decodes too;
// both forms normalize to the string representation.
type UserID string

func (u *UserID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty user id")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or a number: %w", err)
	}
	*u = UserID(n.String())
	return nil
}

// RoomID identifies a call session, chosen by the initiating client.
// Decodes from a string or a bare number, like UserID.
type RoomID string

func (r *RoomID) UnmarshalJSON(data []byte) error {
	var u UserID
	if err := (&u).UnmarshalJSON(data); err != nil {
		return fmt.Errorf("room id: %w", err)
	}
	*r = RoomID(u)
	return nil
}

// Caller is the display metadata sent along with call signaling.
type Caller struct {
	ID             UserID `json:"id"`
	Name           string `json:"name,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// SendMsgData is a chat message addressed to one recipient.
type SendMsgData struct {
	To      UserID `json:"to"`
	From    UserID `json:"from"`
	Message string `json:"message"`
}

// MsgReceiveData is delivered to the recipient of a chat message.
type MsgReceiveData struct {
	From    UserID `json:"from"`
	Message string `json:"message"`
}

// OutgoingCallData signals a new voice or video call to a callee.
type OutgoingCallData struct {
	To       UserID `json:"to"`
	From     Caller `json:"from"`
	RoomID   RoomID `json:"roomId"`
	CallType string `json:"callType"`
}

// IncomingCallData is delivered to the callee of a signaled call.
type IncomingCallData struct {
	From     Caller `json:"from"`
	RoomID   RoomID `json:"roomId"`
	CallType string `json:"callType"`
}

// RejectCallData routes a rejection back to the original caller.
type RejectCallData struct {
	From UserID `json:"from"`
}

// AcceptIncomingCallData routes an acceptance back to the original
// caller. The field is named id on the wire, not from.
type AcceptIncomingCallData struct {
	ID UserID `json:"id"`
}

// OnlineUsersData carries the full online set after a presence change.
type OnlineUsersData struct {
	OnlineUsers []UserID `json:"onlineUsers"`
}
