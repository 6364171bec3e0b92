package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"overcooked-ordering/order-svc/internal/domain"
	"overcooked-ordering/order-svc/internal/service"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("svc", "order-svc").Str("component", "kitchen-feed").Logger()

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one kitchen screen. VenueID 0 receives events from every venue.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	venueID   int64
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn().Err(err).Msg("websocket write error")
				c.hub.detach(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.hub.detach(c)
				return
			}
		}
	}
}

// readPump only drains control frames; kitchen screens never send commands.
func (c *Client) readPump() {
	defer c.hub.detach(c)
	c.conn.SetReadLimit(1 << 12)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}
	}
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

// Clients reports the number of connected screens.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(_ context.Context, event domain.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("broadcast marshal error")
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		if c.venueID != 0 && c.venueID != event.VenueID {
			continue
		}
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.detach(c)
	}
}

// ServeWS upgrades the request and subscribes the connection to venueID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, venueID int64) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), venueID: venueID}
	h.attach(client)
	logger.Info().Int64("venue_id", venueID).Msg("kitchen screen connected")

	go client.writePump()
	go client.readPump()
}

var _ service.Notifier = (*Hub)(nil)
