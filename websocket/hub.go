package websocket

import (
	"log"
	"sync"

	"github.com/ftld/certforge/models"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type FeedEvent struct {
	Type        string              `json:"type"`
	Certificate *models.Certificate `json:"certificate"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *models.Certificate)

func init() {
	go RunHub()
}

// RunHub fans newly issued certificates out to every connected admin
// dashboard. With no clients connected, broadcasts are consumed and dropped
// so issuance never blocks on the feed.
func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Feed client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Feed client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case cert := <-Broadcast:
			event := FeedEvent{Type: "certificate.issued", Certificate: cert}

			var broken []uuid.UUID
			clientsMu.RLock()
			for userID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending feed event to client %s: %v", userID, err)
					conn.Close()
					broken = append(broken, userID)
				}
			}
			clientsMu.RUnlock()

			if len(broken) > 0 {
				clientsMu.Lock()
				for _, userID := range broken {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
