package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	outboundBuffer = 16
	pingInterval   = 30 * time.Second
)

// Client is one connected display. Clients never send anything meaningful;
// they exist to receive sync messages from the hub.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	out  chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		out:  make(chan []byte, outboundBuffer),
	}
}

// Run registers the client and pumps hub messages to the connection until
// it closes. Incoming frames are discarded via CloseRead, whose context
// ends when the peer goes away.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx = c.conn.CloseRead(ctx)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.out:
			if !ok {
				// Hub closed the channel.
				c.conn.Close(ws.StatusNormalClosure, "")
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
