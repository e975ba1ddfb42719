package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkPresenceBroadcast(b *testing.B, connections int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	actor := NewClient("h-actor")
	hub.Attach(actor)
	go func() {
		for range actor.Events {
		}
	}()

	// The target consumes exactly one broadcast per registry mutation,
	// so its buffer never fills and nothing is dropped.
	target := NewClient("h-0")
	hub.Attach(target)
	announce(target, "u0")
	<-target.Events

	for i := 1; i < connections; i++ {
		c := NewClient(fmt.Sprintf("h-%d", i))
		hub.Attach(c)
		announce(c, fmt.Sprintf("u%d", i))
		<-target.Events
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		announce(actor, "actor")
		<-target.Events
		actor.Commands <- &Command{Kind: CommandSignout, User: "actor"}
		<-target.Events
	}
}

func BenchmarkPresenceBroadcast_10(b *testing.B)  { benchmarkPresenceBroadcast(b, 10) }
func BenchmarkPresenceBroadcast_100(b *testing.B) { benchmarkPresenceBroadcast(b, 100) }
func BenchmarkPresenceBroadcast_500(b *testing.B) { benchmarkPresenceBroadcast(b, 500) }
