package core

import "sync"

// Client is one live transport connection as seen by the relay core.
// Handle is the ephemeral connection identifier assigned at accept time;
// it is never reused after the connection closes.
type Client struct {
	Handle   string
	Commands chan *Command
	Events   chan *Event

	closeOnce sync.Once
}

// NewClient constructs a client with initialized channels.
func NewClient(handle string) *Client {
	return &Client{
		Handle:   handle,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
	}
}

// closeCommands seals the command stream. Safe to call more than once.
func (c *Client) closeCommands() {
	c.closeOnce.Do(func() { close(c.Commands) })
}
