package conversation

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// Allow any origin for dev; lock down in production
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsEvent is the frame pushed to the client for every delivered message.
type wsEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message"`
}

// WSHandler streams a conversation's messages over a WebSocket.
//
// Endpoint: GET /ws/conversations/:id?token=JWT_TOKEN
//
// Authentication runs through the regular auth middleware, which accepts the
// token as a query parameter because WebSocket clients cannot set headers.
type WSHandler struct {
	service *Service
}

func NewWSHandler(service *Service) *WSHandler {
	return &WSHandler{service: service}
}

// Stream upgrades the connection and replays the stored history before
// pushing live messages. The subscription is released when the client
// disconnects.
func (h *WSHandler) Stream(c *gin.Context) {
	userID := c.GetString("user_id")
	convID := c.Param("id")

	sub, err := h.service.SubscribeMessages(c.Request.Context(), convID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		switch err {
		case ErrNotFound:
			status = http.StatusNotFound
		case ErrInvalidParticipant:
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Cancel()
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	log.Printf("user %s subscribed to conversation %s", userID, convID)

	done := make(chan struct{})
	go h.writeLoop(conn, sub, done)

	// Read loop exists only to detect disconnects and answer pings
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	sub.Cancel()
	close(done)
	conn.Close()
	log.Printf("user %s left conversation %s", userID, convID)
}

// writeLoop pushes subscription messages and periodic pings. It owns all
// writes on the connection.
func (h *WSHandler) writeLoop(conn *websocket.Conn, sub *Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsEvent{Type: "message", Message: msg}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
