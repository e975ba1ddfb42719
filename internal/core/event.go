package core

// EventKind is a notification the relay emits to clients.
type EventKind int

const (
	// EventMessageReceive delivers a chat message to the recipient.
	EventMessageReceive EventKind = iota
	// EventIncomingVoiceCall notifies the callee of a voice call.
	EventIncomingVoiceCall
	// EventIncomingVideoCall notifies the callee of a video call.
	EventIncomingVideoCall
	// EventVoiceCallRejected notifies the caller of a rejected voice call.
	EventVoiceCallRejected
	// EventVideoCallRejected notifies the caller of a rejected video call.
	EventVideoCallRejected
	// EventAcceptCall notifies the caller that the callee picked up.
	EventAcceptCall
	// EventOnlineUsers carries the full online identity set after a
	// presence change.
	EventOnlineUsers
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind EventKind

	From        string
	Message     string
	Caller      Caller
	RoomID      string
	CallType    string
	OnlineUsers []string
}
