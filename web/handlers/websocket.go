package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// subscriber is one receiver of hub broadcasts. Real connections and test
// doubles both satisfy it.
type subscriber interface {
	sendQueue() chan []byte
	shutdown()
}

// WebSocketHub fans dashboard events (dataset reloads, snapshot saves) out
// to every connected browser. Events are marshaled once on entry; the hub
// loop only moves bytes.
type WebSocketHub struct {
	mu          sync.RWMutex
	subscribers map[subscriber]bool

	broadcast  chan []byte
	register   chan subscriber
	unregister chan subscriber
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWebSocketHub creates a hub. Call Run in a goroutine to start delivery.
func NewWebSocketHub() *WebSocketHub {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHub{
		subscribers: make(map[subscriber]bool),
		broadcast:   make(chan []byte, 256),
		register:    make(chan subscriber),
		unregister:  make(chan subscriber),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run delivers broadcasts until Stop is called.
func (h *WebSocketHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			count := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("WebSocket client connected (total: %d)", count)

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.sendQueue())
			}
			count := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("WebSocket client disconnected (total: %d)", count)

		case data := <-h.broadcast:
			// Full lock: a subscriber that cannot keep up is dropped here.
			h.mu.Lock()
			for sub := range h.subscribers {
				queue := sub.sendQueue()
				select {
				case queue <- data:
				default:
					close(queue)
					delete(h.subscribers, sub)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			log.Println("WebSocket hub stopping...")
			return
		}
	}
}

// Stop shuts down the hub and disconnects every subscriber.
func (h *WebSocketHub) Stop() {
	h.cancel()

	h.mu.Lock()
	for sub := range h.subscribers {
		close(sub.sendQueue())
		sub.shutdown()
	}
	h.subscribers = make(map[subscriber]bool)
	h.mu.Unlock()
}

// Broadcast queues an event for delivery to every subscriber. The event is
// marshaled here; an unencodable event or a full queue drops the message
// with a log line rather than blocking the caller.
func (h *WebSocketHub) Broadcast(event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: Failed to marshal WebSocket event %q: %v", event.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Println("WARNING: WebSocket broadcast channel full, dropping message")
	}
}

// Register adds a subscriber to the hub.
func (h *WebSocketHub) Register(sub subscriber) {
	h.register <- sub
}

// Unregister removes a subscriber from the hub.
func (h *WebSocketHub) Unregister(sub subscriber) {
	h.unregister <- sub
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *WebSocketHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		log.Printf("ERROR: WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.Register(client)

	go client.writePump()
	go client.readPump()
}

// Client is one live WebSocket connection.
type Client struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) sendQueue() chan []byte {
	return c.send
}

func (c *Client) shutdown() {
	if c.conn != nil {
		_ = c.conn.Close(websocket.StatusNormalClosure, "")
	}
}

// writePump forwards queued broadcasts to the connection.
func (c *Client) writePump() {
	defer func() {
		c.hub.Unregister(c)
		c.shutdown()
	}()

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()

		if err != nil {
			log.Printf("ERROR: WebSocket write failed: %v", err)
			return
		}
	}
}

// readPump drains incoming frames to detect disconnects; the dashboard
// never sends anything.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.shutdown()
	}()

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			return
		}
	}
}

// MockClient is a hub subscriber for tests.
type MockClient struct {
	SendChan chan []byte
}

func (m *MockClient) sendQueue() chan []byte {
	return m.SendChan
}

func (m *MockClient) shutdown() {}
