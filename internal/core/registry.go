package core

// Registry maps durable user identities to live connections. It is the
// single source of truth for "who is online, and where". A secondary
// handle index makes the reverse lookup on disconnect O(1).
//
// Invariants: at most one entry per identity, at most one entry per
// handle. A later Register for the same identity replaces the earlier
// one (reconnect from a new session).
//
// Registry is not safe for concurrent use. It is owned and exclusively
// mutated by the Hub goroutine.
type Registry struct {
	byIdentity map[string]*Client
	byHandle   map[string]string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[string]*Client),
		byHandle:   make(map[string]string),
	}
}

// Register inserts or replaces the entry for identity. A reconnect
// orphans the previously mapped connection; it is only cleaned up when
// that connection itself disconnects.
func (r *Registry) Register(identity string, c *Client) {
	// The same connection may re-announce as a different identity;
	// drop its old entry so the handle stays in at most one entry.
	if prev, ok := r.byHandle[c.Handle]; ok && prev != identity {
		delete(r.byIdentity, prev)
	}
	if old, ok := r.byIdentity[identity]; ok && old.Handle != c.Handle {
		delete(r.byHandle, old.Handle)
	}
	r.byIdentity[identity] = c
	r.byHandle[c.Handle] = identity
}

// UnregisterByIdentity removes the entry for identity if present.
// Returns true if the registry changed. Removing an absent identity is
// a no-op, not an error.
func (r *Registry) UnregisterByIdentity(identity string) bool {
	c, ok := r.byIdentity[identity]
	if !ok {
		return false
	}
	delete(r.byIdentity, identity)
	delete(r.byHandle, c.Handle)
	return true
}

// UnregisterByHandle removes the entry whose connection matches handle.
// Used on ungraceful disconnect where the transport does not hand back
// the identity. Returns true if the registry changed.
func (r *Registry) UnregisterByHandle(handle string) bool {
	identity, ok := r.byHandle[handle]
	if !ok {
		return false
	}
	delete(r.byHandle, handle)
	delete(r.byIdentity, identity)
	return true
}

// Resolve returns the live connection for identity. A false result
// means offline or unknown; callers drop the envelope silently.
func (r *Registry) Resolve(identity string) (*Client, bool) {
	c, ok := r.byIdentity[identity]
	return c, ok
}

// SnapshotIdentities returns all currently registered identities.
// Order is unspecified and carries no meaning.
func (r *Registry) SnapshotIdentities() []string {
	out := make([]string, 0, len(r.byIdentity))
	for identity := range r.byIdentity {
		out = append(out, identity)
	}
	return out
}

// Len reports the number of registered identities.
func (r *Registry) Len() int {
	return len(r.byIdentity)
}
