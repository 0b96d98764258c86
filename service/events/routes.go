package events

import (
	"log"
	"net/http"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// EventsHandler feeds appointment create/update events to signed-in staff
// and doctor clients over a websocket.
type EventsHandler struct {
	db  *gorm.DB
	hub *models.Hub
}

func NewEventsHandler(db *gorm.DB, hub *models.Hub) *EventsHandler {
	return &EventsHandler{db: db, hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *EventsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ws", utils.AuthMiddleware(h.HandleWebSocket))
}

func (h *EventsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Only clinic users get the feed
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	log.Printf("Event feed connected for user %d", userID)

	client := &models.ClientConnection{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		UserID: userID,
	}

	h.hub.Register <- client

	go client.WritePump()
	go h.drainClient(client)
}

// drainClient discards inbound frames; the feed is one-way. Reading is still
// required so close frames are processed.
func (h *EventsHandler) drainClient(client *models.ClientConnection) {
	defer func() {
		h.hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("event feed read error: %v", err)
			}
			return
		}
	}
}
