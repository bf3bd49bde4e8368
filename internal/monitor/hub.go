package monitor

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans out rendered packet strings to every connected websocket
// client. Slow clients are dropped rather than allowed to back up the
// decode loop that feeds Broadcast.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan string
}

const clientSendBuffer = 32

// NewHub returns a Hub ready to accept connections via ServeHTTP.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan string),
	}
}

// ServeHTTP upgrades the request to a websocket connection and registers
// it to receive every future Broadcast call's message.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	send := make(chan string, clientSendBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)

	// The decoder never reads from clients, but a closed connection must
	// still be detected and unregistered.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan string) {
	for msg := range send {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	if ok {
		close(send)
	}
	conn.Close()
}

// Broadcast sends msg to every connected client. A client whose send
// buffer is already full is dropped rather than blocking the caller.
func (h *Hub) Broadcast(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- msg:
		default:
			delete(h.clients, conn)
			close(send)
			conn.Close()
		}
	}
}
