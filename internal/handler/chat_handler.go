package handler

import (
	"net/http"

	"inventory_tracker/internal/chat"
	"inventory_tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// ChatHandler serves the chat page and the websocket endpoint.
type ChatHandler struct {
	hub      *chat.Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(hub *chat.Hub, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Same trust stance as the socket layer: any origin that
			// reaches the endpoint is accepted.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Page renders the chat room for the logged-in user.
func (h *ChatHandler) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", gin.H{
		"title":    "Chat",
		"username": middleware.SessionFrom(c).Username,
	})
}

// Serve upgrades the connection and joins it to the hub. The socket
// itself performs no re-authentication; only the chat page is gated.
func (h *ChatHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := chat.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// RegisterChatRoutes wires the gated chat page and the websocket endpoint.
func (h *ChatHandler) RegisterChatRoutes(router *gin.Engine, authMW gin.HandlerFunc) {
	router.GET("/chat", authMW, h.Page)
	router.GET("/ws", h.Serve)
}
