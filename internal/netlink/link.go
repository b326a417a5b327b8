package netlink

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ugaemi/ghostlight/internal/ws"
)

const (
	writeWait     = 5 * time.Second
	dialTimeout   = 5 * time.Second
	sendBuffer    = 64
	inboundBuffer = 256
)

// Event is one inbound item: a server message, or a notice that the
// connection dropped.
type Event struct {
	Message      ws.Message
	Disconnected bool
}

// Link is the client side of the relay connection. Sends never block, and
// inbound messages are queued for the game loop to apply between ticks.
type Link struct {
	url   string
	hello ws.HelloPayload
	delay time.Duration

	dialer  *websocket.Dialer
	send    chan []byte
	inbound chan Event

	connected bool
	mu        sync.RWMutex
}

// New creates a link that will introduce itself with hello once connected.
func New(url string, hello ws.HelloPayload, reconnectDelay time.Duration) *Link {
	return &Link{
		url:     url,
		hello:   hello,
		delay:   reconnectDelay,
		dialer:  &websocket.Dialer{HandshakeTimeout: dialTimeout},
		send:    make(chan []byte, sendBuffer),
		inbound: make(chan Event, inboundBuffer),
	}
}

// Inbound returns the queue of received messages and disconnect notices.
func (l *Link) Inbound() <-chan Event {
	return l.inbound
}

// Connected reports whether a connection is currently open.
func (l *Link) Connected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.connected
}

// Send queues a message. It is dropped when disconnected or when the send
// buffer is full.
func (l *Link) Send(msg ws.Message) {
	if !l.Connected() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal message", "type", msg.Type, "error", err)
		return
	}
	select {
	case l.send <- data:
	default:
		slog.Debug("link send buffer full, dropping message", "type", msg.Type)
	}
}

// Run keeps the link connected until ctx is cancelled. A dropped or failed
// connection is retried after the fixed reconnect delay.
func (l *Link) Run(ctx context.Context) {
	for {
		conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("connect failed", "url", l.url, "error", err, "retry", l.delay)
		} else {
			l.serve(ctx, conn)
			if ctx.Err() != nil {
				return
			}
			slog.Warn("connection lost", "url", l.url, "retry", l.delay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.delay):
		}
	}
}

// serve runs one connection until it fails or ctx ends.
func (l *Link) serve(ctx context.Context, conn *websocket.Conn) {
	hello, err := json.Marshal(ws.MustMessage(ws.TypeHello, l.hello))
	if err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, hello)
	}
	if err != nil {
		slog.Warn("hello failed", "error", err)
		conn.Close()
		return
	}

	l.drainSend()
	l.setConnected(true)
	slog.Info("connected", "url", l.url)

	done := make(chan struct{})
	go l.writePump(conn, done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	l.readPump(conn)

	close(done)
	conn.Close()
	l.setConnected(false)

	// The last queue slot is kept free for this notice; block if it is taken.
	select {
	case l.inbound <- Event{Disconnected: true}:
	case <-ctx.Done():
	}
}

func (l *Link) readPump(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := ws.Decode(data)
		if err != nil || msg.Type == "" {
			slog.Debug("dropping malformed message", "error", err)
			continue
		}
		l.push(Event{Message: msg})
	}
}

func (l *Link) writePump(conn *websocket.Conn, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case data := <-l.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				conn.Close()
				return
			}
		}
	}
}

// push queues a server message, leaving one slot free for the disconnect
// notice. Only the read pump pushes, so the length check cannot race another
// producer.
func (l *Link) push(ev Event) {
	if len(l.inbound) >= cap(l.inbound)-1 {
		slog.Warn("inbound queue full, dropping message", "type", ev.Message.Type)
		return
	}
	l.inbound <- ev
}

// drainSend discards messages queued for a previous connection.
func (l *Link) drainSend() {
	for {
		select {
		case <-l.send:
		default:
			return
		}
	}
}

func (l *Link) setConnected(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = v
}
