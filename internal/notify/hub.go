package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"tavolo-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	OrderPublicID       string `json:"order_public_id,omitempty"`
	ReservationPublicID string `json:"reservation_public_id,omitempty"`
	MenuItemID          uint   `json:"menu_item_id,omitempty"`
	TableID             uint   `json:"table_id,omitempty"`
	Status              string `json:"status,omitempty"`
}

// Hub fans domain events out to websocket subscribers. A client that
// cannot keep up is dropped rather than allowed to stall the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and registers the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		// Inbound frames are only consumed to detect close.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (h *Hub) broadcast(ctx context.Context, ev Event) {
	ev.Timestamp = time.Now().UTC()

	payload, err := json.Marshal(ev)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.RLock()
	stale := make([]*client, 0)
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.drop(c)
	}

	logger.FromCtx(ctx).Debug("event broadcast",
		zap.String("event_type", ev.Type),
	)
}

func (h *Hub) OrderStatus(ctx context.Context, orderPublicID string, status string) {
	h.broadcast(ctx, Event{
		Type:          "ORDER_STATUS",
		OrderPublicID: orderPublicID,
		Status:        status,
	})
}

func (h *Hub) MenuItemStock(ctx context.Context, menuItemID uint) {
	h.broadcast(ctx, Event{
		Type:       "MENU_ITEM_STOCK",
		MenuItemID: menuItemID,
	})
}

func (h *Hub) TableStatus(ctx context.Context, tableID uint, status string) {
	h.broadcast(ctx, Event{
		Type:    "TABLE_STATUS",
		TableID: tableID,
		Status:  status,
	})
}

func (h *Hub) ReservationStatus(ctx context.Context, reservationPublicID string, status string) {
	h.broadcast(ctx, Event{
		Type:                "RESERVATION_STATUS",
		ReservationPublicID: reservationPublicID,
		Status:              status,
	})
}
