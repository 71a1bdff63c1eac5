package controller

import (
	"net/http"

	"github.com/autolot/dealership-backend/internal/middleware"
	ws "github.com/autolot/dealership-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedController serves the public storefront live feed.
type FeedController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewFeedController(hub *ws.Hub, allowedOrigins []string) *FeedController {
	// "*" means match-all, same as the CORS middleware reading this config.
	allowAll := len(allowedOrigins) == 0
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return &FeedController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				return origins[r.Header.Get("Origin")]
			},
		},
	}
}

// Connect upgrades the request and registers a feed subscriber
// GET /api/v1/feed
func (ctrl *FeedController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, nil)
		return
	}

	client := &ws.Client{
		Hub:  ctrl.hub,
		Conn: &ws.Conn{Conn: conn},
		Send: make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	log.Info("Live feed connection established", map[string]interface{}{
		"clients": ctrl.hub.ClientCount(),
	})
}
