package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	dashboardClients   = make(map[*websocket.Conn]bool)
	dashboardClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastInquiryRefresh tells connected admin dashboards to refetch.
// Called from the fan-out after a new inquiry lands.
func BroadcastInquiryRefresh() {
	dashboardClientsMu.RLock()
	if len(dashboardClients) == 0 {
		dashboardClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(dashboardClients))
	for conn := range dashboardClients {
		clientsCopy = append(clientsCopy, conn)
	}
	dashboardClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":    "refresh",
			"message": "New inquiry received",
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			dashboardClientsMu.Lock()
			delete(dashboardClients, conn)
			dashboardClientsMu.Unlock()
			conn.Close()
		}
	}
}

// DashboardWebSocket handles GET /api/admin/ws
func DashboardWebSocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range cfg.CORS.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	dashboardClientsMu.Lock()
	dashboardClients[conn] = true
	dashboardClientsMu.Unlock()

	defer func() {
		dashboardClientsMu.Lock()
		delete(dashboardClients, conn)
		dashboardClientsMu.Unlock()
		conn.Close()

		log.Println("Dashboard WebSocket connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	// The ping loop must exit with the handler; a bare ticker range would
	// block forever once the read loop returns.
	pingDone := make(chan struct{})
	defer close(pingDone)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-pingDone:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					log.Printf("Failed to set write deadline for ping: %v", err)
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Printf("Ping failed: %v", err)
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Dashboard WebSocket error: %v", err)
			}
			break
		}
	}
}
