package eventsmodule

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/events"
)

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	clientBacklog = 32
)

// StreamHandler serves the event feed
type StreamHandler struct {
	bus      events.EventBus
	logger   hclog.Logger
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a feed handler reading from bus
func NewStreamHandler(bus events.EventBus, logger hclog.Logger) *StreamHandler {
	return &StreamHandler{
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket handles GET /events/ws. The optional types query
// parameter is a comma separated list of event types to receive.
func (h *StreamHandler) HandleWebSocket(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "VALIDATION_ERROR", "message": "websocket upgrade required"},
		})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written an error response
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	outbox := make(chan events.Event, clientBacklog)
	sub := h.bus.Subscribe(func(e events.Event) {
		select {
		case outbox <- e:
		default:
			h.logger.Debug("feed client backlogged, dropping event", "event_type", e.Type)
		}
	}, parseTypes(c.Query("types"))...)
	defer func() { _ = h.bus.Unsubscribe(sub.ID) }()

	h.logger.Debug("feed client connected", "subscription_id", sub.ID, "remote", c.ClientIP())

	done := make(chan struct{})
	go h.readLoop(conn, done)
	h.writeLoop(conn, outbox, done)

	h.logger.Debug("feed client disconnected", "subscription_id", sub.ID)
}

// readLoop discards client messages and closes done when the client goes away
func (h *StreamHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) writeLoop(conn *websocket.Conn, outbox <-chan events.Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case e := <-outbox:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				h.logger.Debug("feed write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GetStats handles GET /events/stats
func (h *StreamHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.bus.GetStats())
}

func parseTypes(raw string) []events.EventType {
	if raw == "" {
		return nil
	}
	var types []events.EventType
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			types = append(types, events.EventType(part))
		}
	}
	return types
}
