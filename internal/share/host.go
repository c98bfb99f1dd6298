package share

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Host serves the board to LAN clients and relays their mutations.
type Host struct {
	mirror   *Mirror
	upgrader websocket.Upgrader
	srv      *http.Server

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// Serve starts the websocket endpoint on port and advertises it over
// mDNS. Local mutations broadcast to every client.
func Serve(m *Mirror, port int) (*Host, error) {
	h := &Host{mirror: m, conns: make(map[*websocket.Conn]bool)}

	mux := http.NewServeMux()
	mux.HandleFunc("/sync", h.handleSync)
	h.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := h.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("share: host server stopped: %v", err)
		}
	}()
	if err := advertise(port); err != nil {
		log.Printf("share: mDNS advertise failed: %v", err)
	}

	m.send = func(msg Message) { h.broadcast(msg, nil) }
	log.Printf("share: hosting on port %d", port)
	return h, nil
}

func (h *Host) handleSync(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("share: upgrade failed: %v", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
	log.Printf("share: client connected from %s", conn.RemoteAddr())

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		conn.Close()
		log.Printf("share: client %s disconnected", conn.RemoteAddr())
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		h.mirror.Apply(msg)
		h.broadcast(msg, conn)
	}
}

func (h *Host) broadcast(msg Message, exclude *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("share: send to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Close stops serving and drops every client.
func (h *Host) Close() {
	h.mu.Lock()
	for conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[*websocket.Conn]bool)
	h.mu.Unlock()
	h.srv.Close()
	shutdownAdvertise()
}
