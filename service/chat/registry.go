package chat

import (
	"sync"
)

// Registry tracks live connections and their room memberships. A room is
// nothing but the set of connections that joined its key; empty rooms are
// deleted on the spot.
type Registry struct {
	mu     sync.RWMutex
	byConn map[string]*Client            // conn_id -> client
	byRoom map[string]map[string]*Client // room -> conn_id -> client
	joined map[string]map[string]bool    // conn_id -> set of rooms
}

func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[string]*Client),
		byRoom: make(map[string]map[string]*Client),
		joined: make(map[string]map[string]bool),
	}
}

// Add registers a freshly upgraded connection, member of no rooms yet.
func (r *Registry) Add(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byConn[c.ConnID] = c
}

// Join adds the connection to a room. Idempotent: joining twice is the
// same as joining once. Unknown connections are ignored.
func (r *Registry) Join(connID, room string) {
	if room == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byConn[connID]
	if !ok {
		return
	}
	m := r.byRoom[room]
	if m == nil {
		m = make(map[string]*Client)
		r.byRoom[room] = m
	}
	m[connID] = c

	set := r.joined[connID]
	if set == nil {
		set = make(map[string]bool)
		r.joined[connID] = set
	}
	set[room] = true
}

// Remove drops the connection and every room membership immediately.
func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.joined[connID] {
		if m := r.byRoom[room]; m != nil {
			delete(m, connID)
			if len(m) == 0 {
				delete(r.byRoom, room)
			}
		}
	}
	delete(r.joined, connID)
	delete(r.byConn, connID)
}

// Room lists the current members of a room; nil when the room is empty.
func (r *Registry) Room(room string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.byRoom[room]
	if len(m) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

// All lists every live connection regardless of room membership.
func (r *Registry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, 0, len(r.byConn))
	for _, c := range r.byConn {
		out = append(out, c)
	}
	return out
}

// Get returns the client for a connection ID, or nil.
func (r *Registry) Get(connID string) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byConn[connID]
}
