package core

import (
	"context"

	"github.com/rs/zerolog"
)

// submission pairs a command with the connection it arrived on.
type submission struct {
	client *Client
	cmd    *Command
}

// Hub is the relay reactor. A single goroutine consumes the inbox and
// handles each command as an atomic, run-to-completion step, so the
// registry needs no locking. Per-client pump goroutines preserve
// arrival order for events from the same connection; no ordering is
// guaranteed across connections.
type Hub struct {
	registry *Registry
	clients  map[*Client]struct{}
	inbox    chan submission
	log      *zerolog.Logger
}

// NewHub creates a hub with an empty registry.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry: NewRegistry(),
		clients:  make(map[*Client]struct{}),
		inbox:    make(chan submission, 64),
		log:      logger,
	}
}

// Attach hands a new connection to the hub and starts pumping its
// commands. The connection has no identity until it announces one via
// an add-user command.
func (h *Hub) Attach(c *Client) {
	h.inbox <- submission{client: c, cmd: &Command{Kind: commandAttach}}
	go h.pump(c)
}

// Detach must be called when the transport connection closes. The
// resulting cleanup runs exactly once per connection even if a signout
// for the same identity was processed earlier.
func (h *Hub) Detach(c *Client) {
	c.closeCommands()
}

// pump forwards one connection's commands into the shared inbox and
// enqueues the detach step after the command stream is sealed.
func (h *Hub) pump(c *Client) {
	for cmd := range c.Commands {
		h.inbox <- submission{client: c, cmd: cmd}
	}
	h.inbox <- submission{client: c, cmd: &Command{Kind: commandDetach}}
}

// Run processes commands until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case sub := <-h.inbox:
			h.dispatch(sub.client, sub.cmd)
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case commandAttach:
		h.clients[c] = struct{}{}
		h.log.Debug().Str("handle", c.Handle).Msg("connection attached")

	case commandDetach:
		delete(h.clients, c)
		if h.registry.UnregisterByHandle(c.Handle) {
			h.log.Debug().Str("handle", c.Handle).Msg("connection detached, identity unregistered")
			h.broadcastPresence()
		} else {
			h.log.Debug().Str("handle", c.Handle).Msg("connection detached")
		}

	case CommandAddUser:
		h.registry.Register(cmd.User, c)
		h.log.Info().Str("user", cmd.User).Str("handle", c.Handle).Msg("user online")
		h.broadcastPresence()

	case CommandSignout:
		if h.registry.UnregisterByIdentity(cmd.User) {
			h.log.Info().Str("user", cmd.User).Msg("user signed out")
			h.broadcastPresence()
		}

	case CommandSendMessage:
		h.forward(cmd.To, &Event{
			Kind:    EventMessageReceive,
			From:    cmd.From,
			Message: cmd.Message,
		})

	case CommandOutgoingVoiceCall:
		h.forward(cmd.To, &Event{
			Kind:     EventIncomingVoiceCall,
			Caller:   cmd.Caller,
			RoomID:   cmd.RoomID,
			CallType: cmd.CallType,
		})

	case CommandOutgoingVideoCall:
		h.forward(cmd.To, &Event{
			Kind:     EventIncomingVideoCall,
			Caller:   cmd.Caller,
			RoomID:   cmd.RoomID,
			CallType: cmd.CallType,
		})

	// Rejections route back to the original caller, named by the
	// envelope's from field.
	case CommandRejectVoiceCall:
		h.forward(cmd.From, &Event{Kind: EventVoiceCallRejected})

	case CommandRejectVideoCall:
		h.forward(cmd.From, &Event{Kind: EventVideoCallRejected})

	// Acceptance also routes back to the caller, but the callee names
	// it via the id field.
	case CommandAcceptCall:
		h.forward(cmd.ID, &Event{Kind: EventAcceptCall})
	}
}

// forward resolves the destination and delivers the event, or drops it
// silently when the destination is offline. Fire-and-forget: no
// buffering, no retry, nothing surfaced back to the sender.
func (h *Hub) forward(identity string, ev *Event) {
	target, ok := h.registry.Resolve(identity)
	if !ok {
		h.log.Debug().Str("to", identity).Int("kind", int(ev.Kind)).Msg("recipient offline, dropping event")
		return
	}
	h.send(target, ev)
}

// broadcastPresence fans the current online set out to every attached
// connection, identified or not. The snapshot is taken inside the same
// reactor step as the registry mutation, so it is never stale.
func (h *Hub) broadcastPresence() {
	ev := &Event{
		Kind:        EventOnlineUsers,
		OnlineUsers: h.registry.SnapshotIdentities(),
	}
	for c := range h.clients {
		h.send(c, ev)
	}
}

func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
