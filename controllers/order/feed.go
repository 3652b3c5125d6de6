package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/storefront-labs/storefront-api/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Feed pushes order lifecycle events (placed, status changed) to connected
// websocket clients. The service emits into Broadcast via OnOrderEvent.
type Feed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewFeed() *Feed {
	return &Feed{clients: make(map[*websocket.Conn]bool)}
}

// GET /admin/orders/ws
func (f *Feed) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		f.mu.Lock()
		f.clients[conn] = true
		f.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.mu.Lock()
				delete(f.clients, conn)
				f.mu.Unlock()
				break
			}
		}
	}
}

func (f *Feed) Broadcast(evt service.OrderEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(f.clients, client)
		}
	}
}
