// Package ws adapts gorilla websocket sessions to the real-time connection contract.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"pulse/contract"
	"pulse/domain/event"
	"pulse/errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var _ contract.Connection = (*Conn)(nil)

type Options struct {
	BufferSize     int
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	MaxMessageSize int64
}

// Conn is one websocket session. Outbound frames are queued on a buffered channel
// and written by a single pump, which keeps per-connection ordering.
type Conn struct {
	id        string
	ws        *websocket.Conn
	log       *slog.Logger
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	opts      Options
}

const (
	defaultWriteTimeout = 10 * time.Second
	defaultPongTimeout  = 60 * time.Second
)

func NewConn(wsConn *websocket.Conn, log *slog.Logger, opts Options) *Conn {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}
	if opts.PongTimeout <= 0 {
		opts.PongTimeout = defaultPongTimeout
	}
	id := uuid.NewString()
	return &Conn{
		id:   id,
		ws:   wsConn,
		log:  log.With("connection_id", id),
		send: make(chan []byte, max(opts.BufferSize, 1)),
		done: make(chan struct{}),
		opts: opts,
	}
}

func (c *Conn) ID() string { return c.id }

// Send never blocks: a saturated or closed connection rejects the frame.
func (c *Conn) Send(ctx context.Context, evt event.Outbound) error {
	select {
	case <-c.done:
		return errors.ErrConnectionClosed
	default:
	}

	frame, err := evt.Encode()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}

	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return errors.ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSendBufferFull
	}
}

// Close stops the pumps and the underlying socket. It is idempotent.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *Conn) Done() <-chan struct{} { return c.done }

// WritePump drains queued frames and keeps the session alive with pings.
func (c *Conn) WritePump(ctx context.Context) {
	ticker := time.NewTicker(c.pingPeriod())
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(c.opts.WriteTimeout))
			return
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug("Write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Debug("Ping failed", "error", err)
				return
			}
		}
	}
}

// ReadPump decodes inbound envelopes and hands them to handle until the peer goes away.
// Frames that are not valid envelopes are skipped.
func (c *Conn) ReadPump(ctx context.Context, handle func(context.Context, event.Envelope)) error {
	defer c.Close()

	if c.opts.MaxMessageSize > 0 {
		c.ws.SetReadLimit(c.opts.MaxMessageSize)
	}
	_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.opts.PongTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("read failed: %w", err)
			}
			return nil
		}

		var env event.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			c.log.Debug("Malformed frame skipped", "size", len(data))
			continue
		}
		handle(ctx, env)
	}
}

func (c *Conn) pingPeriod() time.Duration {
	return c.opts.PongTimeout * 9 / 10
}
