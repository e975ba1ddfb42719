package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, ts *httptest.Server, email, name string) AuthResponse {
	t.Helper()
	var authResp AuthResponse
	code := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    email,
		Name:     name,
		Password: "hunter22",
	}, &authResp)
	if code != http.StatusCreated {
		t.Fatalf("register %s: status %d", email, code)
	}
	if authResp.Token == "" {
		t.Fatalf("register %s: empty token", email)
	}
	return authResp
}

func TestRegisterLoginAndMe(t *testing.T) {
	ts := newTestServer(t)

	reg := registerUser(t, ts, "alice@example.com", "Alice")
	if reg.User.Email != "alice@example.com" || reg.User.Name != "Alice" {
		t.Fatalf("unexpected registered user: %+v", reg.User)
	}

	var dup ErrorResponse
	code := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	}, &dup)
	if code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d", code)
	}

	var login AuthResponse
	code = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	}, &login)
	if code != http.StatusOK || login.Token == "" {
		t.Fatalf("login: status %d, token %q", code, login.Token)
	}

	code = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	}, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("bad password login: status %d", code)
	}

	var me UserResponse
	code = doJSON(t, ts, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	if code != http.StatusOK || me.ID != reg.User.ID {
		t.Fatalf("me: status %d, user %+v", code, me)
	}

	code = doJSON(t, ts, http.MethodGet, "/api/auth/me", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("me without token: status %d", code)
	}
}

func TestOnboardAndContacts(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "")
	bob := registerUser(t, ts, "bob@example.com", "Bob")

	var updated UserResponse
	code := doJSON(t, ts, http.MethodPost, "/api/auth/onboard", alice.Token, OnboardRequest{
		Name:           "Alice",
		About:          "hey there",
		ProfilePicture: "/avatars/1.png",
	}, &updated)
	if code != http.StatusOK {
		t.Fatalf("onboard: status %d", code)
	}
	if updated.Name != "Alice" || updated.About != "hey there" {
		t.Fatalf("unexpected onboarded user: %+v", updated)
	}

	var contacts []UserResponse
	code = doJSON(t, ts, http.MethodGet, "/api/auth/contacts", alice.Token, nil, &contacts)
	if code != http.StatusOK {
		t.Fatalf("contacts: status %d", code)
	}
	if len(contacts) != 1 || contacts[0].ID != bob.User.ID {
		t.Fatalf("contacts should hold only the other user, got %+v", contacts)
	}
}

func TestMessageEndpoints(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "Alice")
	bob := registerUser(t, ts, "bob@example.com", "Bob")

	var created MessageResponse
	code := doJSON(t, ts, http.MethodPost, "/api/messages", alice.Token, AddMessageRequest{
		To:      bob.User.ID,
		Message: "hello bob",
		Type:    "text",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("add message: status %d", code)
	}
	if created.SenderID != alice.User.ID || created.ReceiverID != bob.User.ID || created.Status != "sent" {
		t.Fatalf("unexpected created message: %+v", created)
	}

	var conversation []MessageResponse
	path := fmt.Sprintf("/api/messages/%d", alice.User.ID)
	code = doJSON(t, ts, http.MethodGet, path, bob.Token, nil, &conversation)
	if code != http.StatusOK {
		t.Fatalf("list messages: status %d", code)
	}
	if len(conversation) != 1 || conversation[0].Message != "hello bob" {
		t.Fatalf("unexpected conversation: %+v", conversation)
	}

	// Listing marked the peer's messages read for the next fetch.
	code = doJSON(t, ts, http.MethodGet, path, bob.Token, nil, &conversation)
	if code != http.StatusOK {
		t.Fatalf("second list: status %d", code)
	}
	if conversation[0].Status != "read" {
		t.Fatalf("expected read status, got %s", conversation[0].Status)
	}
}

func TestCallTokenEndpoint(t *testing.T) {
	ts := newTestServer(t)

	alice := registerUser(t, ts, "alice@example.com", "Alice")

	var info struct {
		URL      string `json:"url"`
		Token    string `json:"token"`
		RoomName string `json:"room_name"`
		Identity string `json:"identity"`
	}
	code := doJSON(t, ts, http.MethodGet, "/api/calls/token/room-9", alice.Token, nil, &info)
	if code != http.StatusOK {
		t.Fatalf("call token: status %d", code)
	}
	if info.Token == "" || info.RoomName != "room-room-9" {
		t.Fatalf("unexpected join info: %+v", info)
	}

	code = doJSON(t, ts, http.MethodGet, "/api/calls/token/room-9", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("call token without auth: status %d", code)
	}
}
