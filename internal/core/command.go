package core

// CommandKind describes what the client wants the relay to do.
type CommandKind int

const (
	// CommandAddUser announces the durable identity behind a connection.
	CommandAddUser CommandKind = iota
	// CommandSignout explicitly removes the identity from the registry.
	CommandSignout
	// CommandSendMessage relays a chat message to one recipient.
	CommandSendMessage
	// CommandOutgoingVoiceCall signals a voice call to the callee.
	CommandOutgoingVoiceCall
	// CommandOutgoingVideoCall signals a video call to the callee.
	CommandOutgoingVideoCall
	// CommandRejectVoiceCall routes a rejection back to the caller.
	CommandRejectVoiceCall
	// CommandRejectVideoCall routes a rejection back to the caller.
	CommandRejectVideoCall
	// CommandAcceptCall routes an acceptance back to the caller.
	CommandAcceptCall

	// internal lifecycle commands, produced by the hub itself
	commandAttach
	commandDetach
)

// Caller is the display metadata a call initiator sends along with
// call signaling so the callee can render the incoming-call screen.
type Caller struct {
	ID             string
	Name           string
	ProfilePicture string
}

// Command is one inbound relay envelope. Only the fields relevant to
// the Kind are set; the rest stay zero.
type Command struct {
	Kind CommandKind

	// User is the identity for add-user and signout.
	User string

	// To is the destination identity for messages and outgoing calls.
	To string
	// From is the message source, or the caller identity a rejection
	// routes back to.
	From string
	// ID is the caller identity an acceptance routes back to. The wire
	// field name differs from reject on purpose; see the proto package.
	ID string

	Message  string
	Caller   Caller
	RoomID   string
	CallType string
}
