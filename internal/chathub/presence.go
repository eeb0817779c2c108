package chathub

import "sync"

// PresenceDirectory maps user ids to their live connection. The coordinator
// owns registration; the read lock lets HTTP handlers peek at connectivity
// without entering the dispatch loop.
type PresenceDirectory struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewPresenceDirectory() *PresenceDirectory {
	return &PresenceDirectory{clients: make(map[string]Client)}
}

// Add registers a connection for its user, returning the connection it
// replaced, if any.
func (d *PresenceDirectory) Add(c Client) Client {
	d.mu.Lock()
	defer d.mu.Unlock()
	old := d.clients[c.GetUserID()]
	d.clients[c.GetUserID()] = c
	return old
}

func (d *PresenceDirectory) Remove(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.clients, userID)
}

// Get returns the live connection for userID, or nil when offline.
func (d *PresenceDirectory) Get(userID string) Client {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.clients[userID]
}

func (d *PresenceDirectory) UserIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.clients))
	for id := range d.clients {
		ids = append(ids, id)
	}
	return ids
}

func (d *PresenceDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.clients)
}
