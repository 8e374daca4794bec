package ws

import "sync"

// connRegistry is a concurrency-safe set of connections. Adds and removes
// come from per-connection goroutines while broadcasters iterate; snapshot
// copies the membership under the lock so iteration never races a mutation.
type connRegistry struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

func newConnRegistry() *connRegistry {
	return &connRegistry{conns: make(map[string]Conn)}
}

func (r *connRegistry) add(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn.ID()] = conn
}

// remove reports whether the connection was still registered.
func (r *connRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return false
	}
	delete(r.conns, id)
	return true
}

func (r *connRegistry) snapshot() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Conn, 0, len(r.conns))
	for _, conn := range r.conns {
		out = append(out, conn)
	}
	return out
}

func (r *connRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
