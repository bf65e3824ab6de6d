package notification

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

type countEvent struct {
	Type        string `json:"type"`
	UnreadCount int64  `json:"unread_count"`
}

// WSHandler streams the unread counter over a WebSocket.
//
// Endpoint: GET /ws/notifications?token=JWT_TOKEN
type WSHandler struct {
	service *Service
}

func NewWSHandler(service *Service) *WSHandler {
	return &WSHandler{service: service}
}

// Stream pushes the current unread count immediately and then every change
// until the client disconnects.
func (h *WSHandler) Stream(c *gin.Context) {
	userID := c.GetString("user_id")

	sub, err := h.service.SubscribeUnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription failed"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Cancel()
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	log.Printf("user %s subscribed to unread counter", userID)

	done := make(chan struct{})
	go h.writeLoop(conn, sub, done)

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
	log.Printf("user %s left unread counter", userID)
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, sub *CountSubscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case count, ok := <-sub.C:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(countEvent{Type: "unread_count", UnreadCount: count}); err != nil {
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
