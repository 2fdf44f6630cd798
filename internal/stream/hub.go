// Package stream broadcasts edge report batches to websocket
// subscribers.
package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// ServerMessage is the wire envelope pushed to subscribers.
type ServerMessage struct {
	Type      string              `json:"type"`
	Reports   []models.EdgeReport `json:"reports"`
	Timestamp time.Time           `json:"timestamp"`
}

const messageTypeEdgeBatch = "edge_batch"

// Hub maintains the set of active subscribers and fans edge batches
// out to them.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan []models.EdgeReport
	register   chan *Client
	unregister chan *Client

	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.New()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []models.EdgeReport, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run starts the hub's main loop and blocks until the context is done.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("Edge stream hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case reports := <-h.broadcast:
			h.broadcastBatch(reports)
		}
	}
}

// PublishEdges enqueues an edge batch for broadcast. Non-blocking: a
// full buffer drops the batch, the next scan supersedes it anyway.
func (h *Hub) PublishEdges(reports []models.EdgeReport) {
	select {
	case h.broadcast <- reports:
	default:
		h.logger.Warn("Broadcast buffer full, dropping edge batch")
	}
}

// ServeWS upgrades an HTTP request to a websocket subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	client := newClient(uuid.New().String(), conn, h)
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// ClientCount returns the number of active subscribers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	metrics.StreamClients.Set(float64(len(h.clients)))
	h.logger.WithFields(logrus.Fields{
		"client": c.id,
		"total":  len(h.clients),
	}).Info("Stream client connected")
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		metrics.StreamClients.Set(float64(len(h.clients)))
		h.logger.WithFields(logrus.Fields{
			"client": c.id,
			"total":  len(h.clients),
		}).Info("Stream client disconnected")
	}
}

func (h *Hub) broadcastBatch(reports []models.EdgeReport) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := ServerMessage{
		Type:      messageTypeEdgeBatch,
		Reports:   reports,
		Timestamp: time.Now().UTC(),
	}

	for _, c := range clients {
		if !c.trySend(message) {
			// Subscriber cannot keep up; cut it loose rather than buffer.
			h.logger.WithField("client", c.id).Warn("Stream client too slow, disconnecting")
			go func(slow *Client) { h.unregister <- slow }(c)
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.logger.WithField("clients", len(h.clients)).Info("Edge stream hub shutting down")

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	metrics.StreamClients.Set(0)
}
