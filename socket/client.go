package socket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CheckOrigin allows the dashboard dev server to connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one dashboard websocket connection watching a survey.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	SurveyID string
	Send     chan []byte
}

// ServeWs upgrades the request and registers the client in the survey's
// room. surveyExists lets the router reject rooms for unknown surveys
// without the hub knowing about the store.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, surveyExists func(string) bool) {
	surveyID := r.URL.Query().Get("surveyId")
	if surveyID == "" {
		http.Error(w, "Missing surveyId parameter", http.StatusBadRequest)
		return
	}
	if surveyExists != nil && !surveyExists(surveyID) {
		http.Error(w, "Survey not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:      hub,
		Conn:     conn,
		SurveyID: surveyID,
		Send:     make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames; the dashboard feed is one-way. It
// exists to notice the peer going away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Send ping every 30s
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return // Connection is dead
			}
		}
	}
}
