package models

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

const (
	EventAppointmentCreated = "appointment_created"
	EventAppointmentUpdated = "appointment_updated"
)

// Event is pushed to every connected staff/doctor client when an
// appointment is created or triaged.
type Event struct {
	Type        string       `json:"type"`
	Appointment *Appointment `json:"appointment,omitempty"`
}

type ClientConnection struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	UserID uint
}

// Hub fans appointment events out to connected clients. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*ClientConnection]bool
	Register   chan *ClientConnection
	Unregister chan *ClientConnection
	Broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*ClientConnection]bool),
		Register:   make(chan *ClientConnection),
		Unregister: make(chan *ClientConnection),
		Broadcast:  make(chan []byte, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop it
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// BroadcastEvent serializes an event and queues it for every connected
// client. Safe to call from any handler goroutine.
func (h *Hub) BroadcastEvent(eventType string, appointment *Appointment) {
	payload, err := json.Marshal(Event{Type: eventType, Appointment: appointment})
	if err != nil {
		log.Printf("error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
		log.Printf("event feed backlogged, dropping %s event", eventType)
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *ClientConnection) WritePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("websocket write to user %d failed: %v", c.UserID, err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
