package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Subprotocol is the single sub-protocol identifier the push channel accepts.
const Subprotocol = "notifications.v1"

// UpgradeRequired rejects plain HTTP requests on the websocket path.
func UpgradeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler upgrades the connection and ties its lifecycle to the hub. The
// channel is emit-only: inbound frames are read and discarded, and any
// transport error closes only the affected connection.
func Handler(hub *Hub, logger *zap.Logger) fiber.Handler {
	return websocket.New(func(wsc *websocket.Conn) {
		conn := newSocketConn(wsc, defaultWriteWait)
		hub.OnConnect(conn)
		defer func() {
			_ = conn.Close()
			hub.OnDisconnect(conn)
		}()

		for {
			if _, _, err := wsc.ReadMessage(); err != nil {
				logger.Debug("push connection read ended",
					zap.String("conn_id", conn.ID()),
					zap.Error(err))
				return
			}
		}
	}, websocket.Config{Subprotocols: []string{Subprotocol}})
}
