package share

import (
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client mirrors the board to and from a host.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Join dials ws://addr/sync and wires the mirror both ways. addr is
// "host:port", as produced by Discover.
func Join(m *Mirror, addr string) (*Client, error) {
	url := fmt.Sprintf("ws://%s/sync", addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", addr, err)
	}
	c := &Client{conn: conn}
	m.send = c.write
	log.Printf("share: joined host at %s", addr)

	go func() {
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				log.Printf("share: disconnected from host: %v", err)
				return
			}
			m.Apply(msg)
		}
	}()
	return c, nil
}

func (c *Client) write(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Printf("share: send failed: %v", err)
	}
}

// Close drops the connection.
func (c *Client) Close() { c.conn.Close() }
