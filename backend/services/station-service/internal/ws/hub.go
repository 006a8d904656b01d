package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"evstation/backend/services/station-service/internal/events"
)

// Hub tracks dashboard connections subscribed to the AI log feed.
type Hub struct {
	mu           sync.RWMutex
	connections  map[string]*Connection
	pingInterval time.Duration
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
	logger       *zap.Logger
}

// NewHub builds connection hub.
func NewHub(pingInterval, writeTimeout time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Hub{
		connections:  make(map[string]*Connection),
		pingInterval: pingInterval,
		writeTimeout: writeTimeout,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS is HTTP handler for GET /api/logs/stream. It blocks until the client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	connection := NewConnection(uuid.NewString(), conn, h.writeTimeout, h.logger, func(id string) {
		h.remove(id)
		cancel()
	})
	h.add(connection)
	h.logger.Info("log stream client connected", zap.String("conn_id", connection.ID()), zap.String("remote", r.RemoteAddr))

	connection.Start(ctx)
}

// Count returns number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish broadcasts the log entries of event, oldest first, so clients that prepend keep list order.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	for i := len(event.Logs) - 1; i >= 0; i-- {
		data, err := json.Marshal(event.Logs[i])
		if err != nil {
			return err
		}
		h.broadcast(data)
	}
	return nil
}

// Start runs the ping loop until ctx is cancelled, then disconnects every client.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			for _, conn := range h.snapshot() {
				if err := conn.Ping(); err != nil {
					h.logger.Debug("log stream ping failed", zap.String("conn_id", conn.ID()), zap.Error(err))
				}
			}
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	for _, conn := range h.snapshot() {
		conn.Send(data)
	}
}

func (h *Hub) add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn.ID()] = conn
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, id)
}

func (h *Hub) snapshot() []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]*Connection, 0, len(h.connections))
	for _, conn := range h.connections {
		result = append(result, conn)
	}
	return result
}

func (h *Hub) closeAll() {
	for _, conn := range h.snapshot() {
		conn.cleanup()
	}
}
