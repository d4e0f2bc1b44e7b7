package ws

import (
	"encoding/json"
	"time"

	"taskhub_backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 8192
)

type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
}

func NewClient(userID int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		hub:    hub,
	}
}

// Run starts the write pump and blocks reading messages until the
// connection drops.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.LeaveAll(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("read error", "user", c.UserID, "error", err)
			}
			return
		}
		c.handleMessage(msg)
	}
}

// handleMessage routes one inbound envelope: membership changes mutate the
// hub, task events are relayed to the rest of the channel.
func (c *Client) handleMessage(raw []byte) {
	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		logger.Debug("dropping malformed message", "user", c.UserID, "error", err)
		return
	}

	switch e.Type {
	case MsgOpenProject:
		if e.Project != 0 {
			c.hub.Join(e.Project, c)
		}
	case MsgCloseProject:
		if e.Project != 0 {
			c.hub.Leave(e.Project, c)
		}
	case EventTaskCreated, EventTaskDeleted, EventTaskEdited, EventTaskStateChanged:
		projectID := projectIDFrom(&e)
		if projectID == 0 {
			logger.Debug("task event without project reference", "user", c.UserID, "type", e.Type)
			return
		}
		out, err := json.Marshal(Envelope{Type: e.Type, Project: projectID, Task: e.Task})
		if err != nil {
			return
		}
		c.hub.Broadcast(projectID, c, e.Type, out)
	default:
		logger.Debug("unknown message type", "user", c.UserID, "type", e.Type)
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
