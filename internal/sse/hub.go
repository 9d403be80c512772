package sse

import (
	"context"
	"sync"

	"examflow/internal/model"
)

// Client is a page connected to the event stream.
type Client struct {
	Info model.Client
	Ch   chan model.Event
}

// outbound is an event for one client, or for all when clientID is empty.
type outbound struct {
	clientID string
	event    model.Event
}

// Hub tracks connected pages and fans worker events out to them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	outbound   chan outbound
	clients    map[string]*Client
	mu         sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan outbound, 64),
		clients:    make(map[string]*Client),
		done:       make(chan struct{}),
	}
}

// Done is closed once Run has returned. Calls made after that are no-ops.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues event for every connected client.
func (h *Hub) Broadcast(event model.Event) {
	select {
	case h.outbound <- outbound{event: event}:
	case <-h.done:
	}
}

// Send queues event for one client. Unknown ids are dropped.
func (h *Hub) Send(clientID string, event model.Event) {
	if clientID == "" {
		return
	}
	select {
	case h.outbound <- outbound{clientID: clientID, event: event}:
	case <-h.done:
	}
}

// MatchAll lists connected clients of the given type; an empty type
// matches every client.
func (h *Hub) MatchAll(clientType string) []model.Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []model.Client
	for _, c := range h.clients {
		if clientType == "" || c.Info.Type == clientType {
			out = append(out, c.Info)
		}
	}
	return out
}

func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case out := <-h.outbound:
			if out.clientID == "" {
				h.broadcastAll(out.event)
			} else {
				h.sendTo(out.clientID, out.event)
			}
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.Info.ID] = client
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client.Info.ID] == client {
		delete(h.clients, client.Info.ID)
	}
}

func (h *Hub) broadcastAll(event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		deliver(client, event)
	}
}

func (h *Hub) sendTo(clientID string, event model.Event) {
	h.mu.RLock()
	client := h.clients[clientID]
	h.mu.RUnlock()
	if client != nil {
		deliver(client, event)
	}
}

func deliver(client *Client, event model.Event) {
	select {
	case client.Ch <- event:
	default:
		// Drop if the client is too slow.
	}
}
