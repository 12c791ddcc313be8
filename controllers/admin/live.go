package adminControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// CheckoutFeedHandler streams checkout confirmations to the back-office
// dashboard. Nothing durable backs this feed — confirmations that nobody is
// watching are simply gone, which is the storefront's documented limitation.
// GET /admin/live/checkouts (websocket upgrade)
func CheckoutFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastConfirmation pushes a confirmed checkout to every connected
// dashboard. Write failures drop the client on its next read.
func BroadcastConfirmation(payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
