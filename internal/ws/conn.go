package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// defaultWriteWait bounds a single frame write so a hung client cannot stall
// broadcast delivery to the other connections.
const defaultWriteWait = 5 * time.Second

var errConnClosed = errors.New("connection closed")

// Conn is one open push channel. The hub only ever touches connections
// through this interface, which keeps broadcast logic independent of the
// websocket transport.
type Conn interface {
	ID() string
	IsOpen() bool
	WriteText(msg []byte) error
	Close() error
}

// socketConn adapts a websocket connection to the hub's Conn contract.
// Writes are serialized; the underlying websocket permits one writer at a
// time while the broadcaster and the heartbeat ticker run concurrently.
type socketConn struct {
	id        string
	writeWait time.Duration
	closed    atomic.Bool

	mu sync.Mutex
	ws *websocket.Conn
}

func newSocketConn(wsc *websocket.Conn, writeWait time.Duration) *socketConn {
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}
	return &socketConn{id: uuid.NewString(), writeWait: writeWait, ws: wsc}
}

func (c *socketConn) ID() string {
	return c.id
}

func (c *socketConn) IsOpen() bool {
	return !c.closed.Load()
}

func (c *socketConn) WriteText(msg []byte) error {
	if c.closed.Load() {
		return errConnClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, msg)
}

func (c *socketConn) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.ws.Close()
}
