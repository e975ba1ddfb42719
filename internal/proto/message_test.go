package proto

import (
	"encoding/json"
	"testing"
)

func TestUserIDDecodesStringAndNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    UserID
		wantErr bool
	}{
		{name: "string", raw: `"u1"`, want: "u1"},
		{name: "number", raw: `42`, want: "42"},
		{name: "large number", raw: `9007199254740993`, want: "9007199254740993"},
		{name: "object", raw: `{"id":1}`, wantErr: true},
		{name: "array", raw: `[1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u UserID
			err := json.Unmarshal([]byte(tt.raw), &u)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if u != tt.want {
				t.Fatalf("got %q, want %q", u, tt.want)
			}
		})
	}
}

func TestInboundEnvelopeDecoding(t *testing.T) {
	raw := `{"event":"send-msg","data":{"to":7,"from":"u1","message":"hi"}}`

	var in Inbound
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if in.Event != InboundSendMsg {
		t.Fatalf("unexpected event name: %s", in.Event)
	}

	var msg SendMsgData
	if err := json.Unmarshal(in.Data, &msg); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if msg.To != "7" || msg.From != "u1" || msg.Message != "hi" {
		t.Fatalf("unexpected payload: %+v", msg)
	}
}

func TestOutgoingCallDataDecoding(t *testing.T) {
	raw := `{"to":"u2","from":{"id":1,"name":"Alice","profilePicture":"/a.png"},"roomId":829301,"callType":"video"}`

	var call OutgoingCallData
	if err := json.Unmarshal([]byte(raw), &call); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if call.To != "u2" || call.From.ID != "1" || call.From.Name != "Alice" {
		t.Fatalf("unexpected call payload: %+v", call)
	}
	if call.RoomID != "829301" || call.CallType != "video" {
		t.Fatalf("unexpected room/type: %+v", call)
	}
}
