// Command ws_smoke is a manual smoke client for the relay endpoint.
// It announces an identity, optionally sends one message, then prints
// every event the server pushes until interrupted.
//
// Usage:
//
//	go run ./scripts/ws_smoke -url ws://localhost:8080/ws -user u1
//	go run ./scripts/ws_smoke -url ws://localhost:8080/ws -user u2 -to u1 -msg hello
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func main() {
	url := flag.String("url", "ws://localhost:8080/ws", "relay websocket URL")
	user := flag.String("user", "", "identity to announce (required)")
	to := flag.String("to", "", "send one message to this identity after announcing")
	msg := flag.String("msg", "hello from ws_smoke", "message body for -to")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.Dial(ctx, *url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	if err := wsjson.Write(ctx, conn, envelope{Event: "add-user", Data: *user}); err != nil {
		fmt.Fprintf(os.Stderr, "announce: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("announced as %s\n", *user)

	if *to != "" {
		payload := map[string]string{"to": *to, "from": *user, "message": *msg}
		if err := wsjson.Write(ctx, conn, envelope{Event: "send-msg", Data: payload}); err != nil {
			fmt.Fprintf(os.Stderr, "send-msg: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("sent %q to %s\n", *msg, *to)
	}

	for {
		var ev struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if ctx.Err() != nil {
				return
			}
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("<- %s %s\n", ev.Event, ev.Data)
	}
}
