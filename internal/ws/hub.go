package ws

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/observability"
)

// Hub tracks the set of open push connections and fans messages out to them.
// The registry is the only shared mutable state in the package; it is guarded
// by the hub and callers never lock around it. Broadcast iterates over a
// snapshot, so connections may come and go mid-broadcast without faulting.
type Hub struct {
	entity  string
	logger  *zap.Logger
	metrics *observability.Metrics
	conns   *connRegistry
}

// NewHub creates a hub for the given entity name.
func NewHub(entity string, logger *zap.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		entity:  entity,
		logger:  logger,
		metrics: metrics,
		conns:   newConnRegistry(),
	}
}

// OnConnect registers the connection and greets it. A failed greeting is
// logged but never prevents registration.
func (h *Hub) OnConnect(conn Conn) {
	h.conns.add(conn)
	h.logger.Info("push connection opened",
		zap.String("conn_id", conn.ID()),
		zap.Int("open_connections", h.conns.len()))

	greeting := fmt.Sprintf("Connected to the %s channel", h.entity)
	if err := conn.WriteText([]byte(greeting)); err != nil {
		h.logger.Warn("greeting failed", zap.String("conn_id", conn.ID()), zap.Error(err))
	}
}

// OnDisconnect removes the connection from the registry. Safe to call more
// than once for the same connection.
func (h *Hub) OnDisconnect(conn Conn) {
	if h.conns.remove(conn.ID()) {
		h.logger.Info("push connection closed",
			zap.String("conn_id", conn.ID()),
			zap.Int("open_connections", h.conns.len()))
	}
}

// Broadcast sends the message to every connection currently open. A send
// failure on one connection is logged and never interrupts delivery to the
// rest, and no error ever reaches the caller.
func (h *Hub) Broadcast(message string) {
	payload := []byte(message)
	for _, conn := range h.conns.snapshot() {
		if !conn.IsOpen() {
			continue
		}
		if err := conn.WriteText(payload); err != nil {
			h.metrics.RecordSend(false)
			h.logger.Warn("push send failed",
				zap.String("conn_id", conn.ID()),
				zap.Error(err))
			continue
		}
		h.metrics.RecordSend(true)
	}
}

// Heartbeat broadcasts a timestamped liveness message.
func (h *Hub) Heartbeat() {
	h.Broadcast("server heartbeat at " + time.Now().Format("15:04:05"))
}

// RunHeartbeat drives Heartbeat on a fixed period until ctx is cancelled.
// Owned by the process lifecycle; typically run in its own goroutine.
func (h *Hub) RunHeartbeat(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("heartbeat stopped")
			return
		case <-ticker.C:
			h.Heartbeat()
		}
	}
}

// Open returns the number of registered connections.
func (h *Hub) Open() int {
	return h.conns.len()
}
