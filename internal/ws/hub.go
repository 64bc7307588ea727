package ws

import (
	"context"
	"sync"

	"careerpath/internal/pkg/logger"

	"github.com/google/uuid"
)

type envelope struct {
	userID uuid.UUID
	msg    []byte
}

// Hub tracks websocket clients per user. All membership changes and
// deliveries happen on the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	outbox     chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		outbox:     make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        logger.OrNop(log).With("component", "ws_hub"),
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			h.log.Debug("ws connected", "user_id", client.userID, "total_clients", h.ClientCount())

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.log.Debug("ws disconnected", "user_id", client.userID, "total_clients", h.ClientCount())

		case env := <-h.outbox:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[env.userID]))
			for c := range h.clients[env.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- env.msg:
				default:
					h.log.Warn("ws client too slow, dropping", "user_id", client.userID)
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for uid, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, uid)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// SendToUser queues msg for every connection of userID. The message is
// dropped when the outbox is full.
func (h *Hub) SendToUser(userID uuid.UUID, msg []byte) {
	if h == nil {
		return
	}
	select {
	case h.outbox <- envelope{userID: userID, msg: msg}:
	default:
		h.log.Warn("ws message dropped", "reason", "buffer_full", "user_id", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
