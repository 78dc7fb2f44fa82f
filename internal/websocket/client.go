package websocket

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ErrClientBehind is returned when a feed's queue is full
var ErrClientBehind = errors.New("client is not keeping up")

const (
	feedQueueSize = 32
	feedWriteWait = 5 * time.Second
	// browsers only send close frames on this feed
	feedReadLimit = 128
)

var connSeq atomic.Uint64

// Session is the identity a token resolves to
type Session struct {
	HouseholdID int32
	Subject     string
}

// Client is a push-only event feed for one signed-in browser tab.
// Its ID is "<auth0 subject>#<connection number>" so several tabs of the same
// member can share a household.
type Client struct {
	id      string
	session Session
	conn    *websocket.Conn
	queue   chan []byte
	done    chan struct{}
	once    sync.Once
}

// NewClient wraps an upgraded connection for a session
func NewClient(conn *websocket.Conn, session Session) *Client {
	return &Client{
		id:      session.Subject + "#" + strconv.FormatUint(connSeq.Add(1), 10),
		session: session,
		conn:    conn,
		queue:   make(chan []byte, feedQueueSize),
		done:    make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) HouseholdID() int32 {
	return c.session.HouseholdID
}

// Subject returns the Auth0 subject the feed was opened for
func (c *Client) Subject() string {
	return c.session.Subject
}

// Send queues an event frame without blocking
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.queue <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	default:
		return ErrClientBehind
	}
}

// Close ends the feed. Later calls return nil.
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Serve subscribes the feed to hub and writes queued events until the
// browser goes away, a write fails or the hub closes the feed.
func (c *Client) Serve(hub *Hub) {
	hub.Register(c)
	defer hub.Unregister(c)
	defer c.Close()

	go c.awaitClose()

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.queue:
			_ = c.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Int32("household_id", c.session.HouseholdID).Msg("WebSocket feed write failed")
				return
			}
		}
	}
}

// awaitClose drains inbound frames so the close handshake is seen
func (c *Client) awaitClose() {
	defer c.Close()
	c.conn.SetReadLimit(feedReadLimit)
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}
