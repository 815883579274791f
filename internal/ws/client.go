package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write; a socket that cannot take a
	// frame within this window is treated as dead.
	writeWait = 5 * time.Second

	// sendBacklog is the per-connection outbound queue depth. An observer
	// that falls this far behind is pruned rather than awaited.
	sendBacklog = 16
)

var (
	ErrBacklogFull = errors.New("observer backlog full")
	ErrClosed      = errors.New("observer connection closed")
)

// Client adapts one websocket to the hub's Sender. All wire writes happen on
// a single goroutine (the websocket allows only one concurrent writer); Send
// just enqueues, so broadcasts never wait on an individual observer's I/O.
type Client struct {
	conn *websocket.Conn
	out  chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		out:  make(chan []byte, sendBacklog),
		done: make(chan struct{}),
	}
}

// Send enqueues one frame without blocking. A full backlog or a closed
// connection is a delivery failure; the hub prunes on either.
func (c *Client) Send(frame []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.out <- frame:
		return nil
	case <-c.done:
		return ErrClosed
	default:
		return ErrBacklogFull
	}
}

// WritePump drains the outbound queue onto the wire. Run it in its own
// goroutine; it exits when Close is called or a write fails.
func (c *Client) WritePump() {
	for {
		select {
		case frame := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// ReadLoop consumes inbound payloads until the transport closes. Clients may
// send arbitrary keep-alives; the content is discarded. A read error is the
// sole disconnect signal.
func (c *Client) ReadLoop() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			c.Close()
			return
		}
	}
}

// Close tears down the transport. Safe to call from the read loop, the write
// pump, and the handler concurrently; only the first call acts.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
