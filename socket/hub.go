package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Praveen5612/skill-survey-bot/pkg/logger"
)

const (
	ResponseType      = "RESPONSE"       // A response was submitted for the survey
	SurveyDeletedType = "SURVEY_DELETED" // The survey was deleted
)

// Event is what dashboard clients receive over the websocket.
type Event struct {
	Type     string          `json:"type"`
	SurveyID string          `json:"survey_id"`
	Payload  json.RawMessage `json:"payload"`
}

// Hub keeps one room per survey and fans events out to every dashboard
// client watching that survey.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan Event),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.SurveyID] == nil {
				h.Rooms[client.SurveyID] = make(map[*Client]bool)
			}
			h.Rooms[client.SurveyID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Rooms[client.SurveyID][client]; ok {
				delete(h.Rooms[client.SurveyID], client)
				close(client.Send)
				if len(h.Rooms[client.SurveyID]) == 0 {
					delete(h.Rooms, client.SurveyID)
				}
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}

			// Collect recipients under the lock, send outside it.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[event.SurveyID]))
			for client := range h.Rooms[event.SurveyID] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					// Full send buffer means the client is lagging.
					// Drop the event; the pumps clean up dead clients.
					logger.Sugar.Warnf("Dashboard client for survey %s is lagging, event dropped.", client.SurveyID)
				}
			}
		}
	}
}

// BroadcastResponse tells dashboards watching the survey that a new
// response arrived.
func (h *Hub) BroadcastResponse(surveyID, respondentEmail string) {
	payload, _ := json.Marshal(map[string]string{
		"respondent_email": respondentEmail,
		"submitted_at":     time.Now().Format(time.RFC3339),
	})
	h.Broadcast <- Event{Type: ResponseType, SurveyID: surveyID, Payload: payload}
}

// RemoveSurvey notifies and disconnects every client watching a deleted
// survey, then drops the room.
func (h *Hub) RemoveSurvey(surveyID string) {
	payload, _ := json.Marshal(Event{Type: SurveyDeletedType, SurveyID: surveyID})

	h.mu.Lock()
	clients, ok := h.Rooms[surveyID]
	if ok {
		for client := range clients {
			select {
			case client.Send <- payload:
			default:
			}
			// Closing the connection makes the readPump exit and
			// unregister the client safely.
			client.Conn.Close()
		}
		delete(h.Rooms, surveyID)
	}
	h.mu.Unlock()
}
