package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected spectator
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex // Serialize writes to WebSocket (required by gorilla/websocket)
}

func (c *Client) send(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// Hub mirrors the transcript to WebSocket spectators. It is an io.Writer so it
// can sit next to the console and the log file. Late joiners get the backlog first.
type Hub struct {
	clients    map[*websocket.Conn]*Client
	backlog    [][]byte
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	done       chan struct{}
	wg         sync.WaitGroup
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn, 64),
		done:       make(chan struct{}),
	}
}

// start launches the hub goroutine
func (h *Hub) start() {
	h.wg.Add(1)
	go h.run()
}

// stop signals the hub goroutine to exit and waits for it to finish
func (h *Hub) stop() {
	close(h.done)
	h.wg.Wait()
}

// Write queues p for every spectator. It never fails; after stop the data is dropped.
func (h *Hub) Write(p []byte) (int, error) {
	msg := append([]byte(nil), p...)
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
	return len(p), nil
}

// clientCount is the number of connected spectators.
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			for _, message := range h.backlog {
				if err := client.send(message); err != nil {
					log.Printf("WebSocket backlog write error: %v", err)
					client.conn.Close()
					client = nil
					break
				}
			}
			if client == nil {
				continue
			}
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()
			log.Printf("Spectator connected. Total: %d", h.clientCount())
			DebugLog("hub.register", "replayed %d lines", len(h.backlog))

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			log.Printf("Spectator disconnected. Total: %d", h.clientCount())

		case message := <-h.broadcast:
			h.backlog = append(h.backlog, message)
			h.mu.Lock()
			for conn, client := range h.clients {
				if err := client.send(message); err != nil {
					log.Printf("WebSocket write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// handleWebSocket upgrades a spectator connection. Spectators only listen;
// anything they send is discarded.
func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var upgrader = websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	DebugLog("handleWebSocket", "upgraded %s", r.RemoteAddr)

	select {
	case h.register <- &Client{conn: conn}:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
