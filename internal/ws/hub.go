package ws

import (
	"context"
	"log"
	"sync/atomic"
)

const (
	broadcastBuffer = 1024
	registerBuffer  = 128
)

// Hub fans admin events out to every connected dashboard. The client set
// is owned by the Run goroutine; other goroutines talk to it over channels.
type Hub struct {
	clients    map[*Client]struct{}
	connected  atomic.Int64
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client, registerBuffer),
		unregister: make(chan *Client, registerBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.drop(c)
			}
			h.closePending()
			h.logger.Printf("[WS] hub stopped")
			return

		case c := <-h.register:
			if c == nil {
				continue
			}
			h.clients[c] = struct{}{}
			h.connected.Store(int64(len(h.clients)))
			h.logger.Printf("[WS] dashboard connected clients=%d", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.logger.Printf("[WS] dashboard disconnected clients=%d", len(h.clients))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.drop(c)
					h.logger.Printf("[WS] slow dashboard dropped clients=%d", len(h.clients))
				}
			}
		}
	}
}

// drop must only be called from Run.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	h.connected.Store(int64(len(h.clients)))
	close(c.send)
}

// closePending releases clients queued for registration when Run stopped.
func (h *Hub) closePending() {
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// Register queues c for Run. It reports false once the hub has stopped; the
// caller owns c's connection in that case.
func (h *Hub) Register(c *Client) bool {
	if h == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister never blocks, so pumps can exit after the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- c:
	default:
	}
}

// Broadcast queues msg for every client. It drops msg when the queue is full
// rather than stall the request that produced it.
func (h *Hub) Broadcast(msg []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Printf("[WS] broadcast dropped reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	return int(h.connected.Load())
}
