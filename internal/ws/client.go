package ws

import (
	"encoding/json"
	"time"

	"taskboard/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	sendBuffer = 64
)

type Client struct {
	PersonID string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

func NewClient(personID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		PersonID: personID,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
		Hub:      hub,
	}
}

// Run registers the client and blocks until the connection goes away.
func (c *Client) Run() {
	// queued before Register: once registered, the hub may close Send
	hello, _ := json.Marshal(Event{Type: MsgHello, At: time.Now().UTC()})
	c.Send <- hello

	if !c.Hub.Register(c) {
		_ = c.Conn.Close()
		return
	}
	go c.writePump()
	c.readPump()
}

// readPump only services control frames; boards never send data.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws: read error", "error", err, "person_id", c.PersonID)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws: write error", "error", err, "person_id", c.PersonID)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
