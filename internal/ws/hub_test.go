package ws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/observability"
)

type fakeConn struct {
	id        string
	failWrite bool

	mu   sync.Mutex
	open bool
	msgs []string
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id, open: true}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *fakeConn) WriteText(msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return errConnClosed
	}
	if f.failWrite {
		return errors.New("write refused")
	}
	f.msgs = append(f.msgs, string(msg))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	return nil
}

func (f *fakeConn) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.msgs...)
}

func newTestHub() *Hub {
	return NewHub("Notification", zap.NewNop(), observability.NewMetrics())
}

func TestHubGreetingOnConnect(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("c1")

	hub.OnConnect(conn)

	require.Equal(t, 1, hub.Open())
	msgs := conn.received()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Notification")
}

func TestHubGreetingFailureStillRegisters(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("c1")
	conn.failWrite = true

	hub.OnConnect(conn)

	assert.Equal(t, 1, hub.Open())
	assert.Empty(t, conn.received())
}

func TestHubBroadcastReachesOnlyOpenConnections(t *testing.T) {
	hub := newTestHub()
	a := newFakeConn("a")
	b := newFakeConn("b")
	c := newFakeConn("c")
	for _, conn := range []*fakeConn{a, b, c} {
		hub.OnConnect(conn)
	}

	// client closes one connection
	require.NoError(t, b.Close())
	hub.OnDisconnect(b)

	hub.Broadcast("hello")

	assert.Contains(t, a.received(), "hello")
	assert.Contains(t, c.received(), "hello")
	assert.NotContains(t, b.received(), "hello")
	assert.Equal(t, 2, hub.Open())
}

func TestHubBroadcastSkipsConnClosedMidIteration(t *testing.T) {
	hub := newTestHub()
	a := newFakeConn("a")
	b := newFakeConn("b")
	hub.OnConnect(a)
	hub.OnConnect(b)

	// closed but not yet removed from the registry
	require.NoError(t, b.Close())

	hub.Broadcast("hello")

	assert.Contains(t, a.received(), "hello")
	assert.NotContains(t, b.received(), "hello")
}

func TestHubSendFailureIsIsolated(t *testing.T) {
	hub := newTestHub()
	a := newFakeConn("a")
	bad := newFakeConn("bad")
	bad.failWrite = true
	c := newFakeConn("c")
	for _, conn := range []*fakeConn{a, bad, c} {
		hub.OnConnect(conn)
	}

	assert.NotPanics(t, func() { hub.Broadcast("payload") })

	assert.Contains(t, a.received(), "payload")
	assert.Contains(t, c.received(), "payload")
	assert.Empty(t, bad.received())
	// a failing connection stays registered; only its own close removes it
	assert.Equal(t, 3, hub.Open())
}

func TestHubOnDisconnectIdempotent(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("c1")
	hub.OnConnect(conn)

	hub.OnDisconnect(conn)
	hub.OnDisconnect(conn)

	assert.Equal(t, 0, hub.Open())
}

func TestHubHeartbeatMessage(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("c1")
	hub.OnConnect(conn)

	hub.Heartbeat()

	msgs := conn.received()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1], "heartbeat")
}

func TestHubRunHeartbeatStopsOnCancel(t *testing.T) {
	hub := newTestHub()
	conn := newFakeConn("c1")
	hub.OnConnect(conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.RunHeartbeat(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		for _, msg := range conn.received() {
			if containsHeartbeat(msg) {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("heartbeat loop did not stop after cancellation")
	}
}

func containsHeartbeat(msg string) bool {
	return strings.HasPrefix(msg, "server heartbeat")
}

func TestHubConcurrentConnectDisconnectBroadcast(t *testing.T) {
	hub := newTestHub()

	const stable = 10
	const churn = 50

	for i := 0; i < stable; i++ {
		hub.OnConnect(newFakeConn(fmt.Sprintf("stable-%d", i)))
	}

	var wg sync.WaitGroup
	for i := 0; i < churn; i++ {
		conn := newFakeConn(fmt.Sprintf("churn-%d", i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.OnConnect(conn)
			_ = conn.Close()
			hub.OnDisconnect(conn)
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast("concurrent")
			hub.Heartbeat()
		}()
	}
	wg.Wait()

	assert.Equal(t, stable, hub.Open())
}
