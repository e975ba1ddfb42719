package http

import (
	"encoding/json"
	"fmt"

	"github.com/zapchat/zapchat-server/internal/core"
	"github.com/zapchat/zapchat-server/internal/proto"
)

// inboundToCommand maps a wire envelope onto a relay command. A non-nil
// error means the envelope was malformed or unknown; the caller drops
// it and logs, per the relay's error policy.
func inboundToCommand(in proto.Inbound) (*core.Command, error) {
	switch in.Event {
	case proto.InboundAddUser:
		var id proto.UserID
		if err := json.Unmarshal(in.Data, &id); err != nil {
			return nil, fmt.Errorf("add-user: %w", err)
		}
		if id == "" {
			return nil, fmt.Errorf("add-user: user id is required")
		}
		return &core.Command{Kind: core.CommandAddUser, User: string(id)}, nil

	case proto.InboundSignout:
		var id proto.UserID
		if err := json.Unmarshal(in.Data, &id); err != nil {
			return nil, fmt.Errorf("signout: %w", err)
		}
		if id == "" {
			return nil, fmt.Errorf("signout: user id is required")
		}
		return &core.Command{Kind: core.CommandSignout, User: string(id)}, nil

	case proto.InboundSendMsg:
		var msg proto.SendMsgData
		if err := json.Unmarshal(in.Data, &msg); err != nil {
			return nil, fmt.Errorf("send-msg: %w", err)
		}
		if msg.To == "" {
			return nil, fmt.Errorf("send-msg: to is required")
		}
		return &core.Command{
			Kind:    core.CommandSendMessage,
			To:      string(msg.To),
			From:    string(msg.From),
			Message: msg.Message,
		}, nil

	case proto.InboundOutgoingVoiceCall, proto.InboundOutgoingVideoCall:
		var call proto.OutgoingCallData
		if err := json.Unmarshal(in.Data, &call); err != nil {
			return nil, fmt.Errorf("%s: %w", in.Event, err)
		}
		if call.To == "" {
			return nil, fmt.Errorf("%s: to is required", in.Event)
		}
		kind := core.CommandOutgoingVoiceCall
		if in.Event == proto.InboundOutgoingVideoCall {
			kind = core.CommandOutgoingVideoCall
		}
		return &core.Command{
			Kind: kind,
			To:   string(call.To),
			Caller: core.Caller{
				ID:             string(call.From.ID),
				Name:           call.From.Name,
				ProfilePicture: call.From.ProfilePicture,
			},
			RoomID:   string(call.RoomID),
			CallType: call.CallType,
		}, nil

	case proto.InboundRejectVoiceCall, proto.InboundRejectVideoCall:
		var reject proto.RejectCallData
		if err := json.Unmarshal(in.Data, &reject); err != nil {
			return nil, fmt.Errorf("%s: %w", in.Event, err)
		}
		if reject.From == "" {
			return nil, fmt.Errorf("%s: from is required", in.Event)
		}
		kind := core.CommandRejectVoiceCall
		if in.Event == proto.InboundRejectVideoCall {
			kind = core.CommandRejectVideoCall
		}
		return &core.Command{Kind: kind, From: string(reject.From)}, nil

	case proto.InboundAcceptIncomingCall:
		var accept proto.AcceptIncomingCallData
		if err := json.Unmarshal(in.Data, &accept); err != nil {
			return nil, fmt.Errorf("accept-incoming-call: %w", err)
		}
		if accept.ID == "" {
			return nil, fmt.Errorf("accept-incoming-call: id is required")
		}
		return &core.Command{Kind: core.CommandAcceptCall, ID: string(accept.ID)}, nil

	default:
		return nil, fmt.Errorf("unknown event %q", in.Event)
	}
}

// outboundFromEvent maps a relay event onto a wire envelope.
func outboundFromEvent(ev *core.Event) proto.Outbound {
	switch ev.Kind {
	case core.EventMessageReceive:
		return proto.Outbound{
			Event: proto.OutboundMsgReceive,
			Data: proto.MsgReceiveData{
				From:    proto.UserID(ev.From),
				Message: ev.Message,
			},
		}

	case core.EventIncomingVoiceCall, core.EventIncomingVideoCall:
		name := proto.OutboundIncomingVoiceCall
		if ev.Kind == core.EventIncomingVideoCall {
			name = proto.OutboundIncomingVideoCall
		}
		return proto.Outbound{
			Event: name,
			Data: proto.IncomingCallData{
				From: proto.Caller{
					ID:             proto.UserID(ev.Caller.ID),
					Name:           ev.Caller.Name,
					ProfilePicture: ev.Caller.ProfilePicture,
				},
				RoomID:   proto.RoomID(ev.RoomID),
				CallType: ev.CallType,
			},
		}

	case core.EventVoiceCallRejected:
		return proto.Outbound{Event: proto.OutboundVoiceCallRejected, Data: struct{}{}}

	case core.EventVideoCallRejected:
		return proto.Outbound{Event: proto.OutboundVideoCallRejected, Data: struct{}{}}

	case core.EventAcceptCall:
		return proto.Outbound{Event: proto.OutboundAcceptCall, Data: struct{}{}}

	case core.EventOnlineUsers:
		online := make([]proto.UserID, 0, len(ev.OnlineUsers))
		for _, id := range ev.OnlineUsers {
			online = append(online, proto.UserID(id))
		}
		return proto.Outbound{
			Event: proto.OutboundOnlineUsers,
			Data:  proto.OnlineUsersData{OnlineUsers: online},
		}

	default:
		return proto.Outbound{Event: "unknown"}
	}
}
