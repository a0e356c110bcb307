package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"portfolio-server/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type incomingMessage struct {
	Type string `json:"type"` // ping
}

// WSHandler serves the live update channel for portfolio pages.
type WSHandler struct {
	mgr      *ws.Manager
	upgrader websocket.Upgrader
}

// NewWSHandler accepts connections from allowedOrigins, or from any origin
// when the list is empty.
func NewWSHandler(mgr *ws.Manager, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WSHandler{
		mgr: mgr,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			return allowed[r.Header.Get("Origin")]
		}},
	}
}

// HandleLiveWS upgrades to websocket and keeps the page subscribed until it
// disconnects.
// GET /ws
func (h *WSHandler) HandleLiveWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	id := h.mgr.Register(conn)
	log.Debug().Str("client", id).Msg("live client connected")

	defer func() {
		h.mgr.Unregister(id)
		log.Debug().Str("client", id).Msg("live client disconnected")
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("client", id).Msg("live client read error")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			log.Debug().Err(err).Str("client", id).Msg("invalid json from live client")
			continue
		}

		switch base.Type {
		case "ping":
			if err := h.mgr.Send(id, ws.Event{Type: ws.EventPong, At: time.Now().UTC()}); err != nil {
				return
			}
		default:
			log.Debug().Str("client", id).Str("type", base.Type).Msg("unknown message type from live client")
		}
	}
}

// GetLiveClients GET /api/live/clients
func (h *WSHandler) GetLiveClients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.mgr.Count()})
}
