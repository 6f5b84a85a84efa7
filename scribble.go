// Scribble websocket transport
//
// Every browser tab holds one websocket to the single room. Frames are JSON
// envelopes of the form {"type": ..., "data": ...} in both directions.
//
// Features:
// - WebSocket at /ws; each connection gets a random UUID as its identity
// - Inbound frames are parsed and queued to the room in arrival order
// - Outbound frames go through a per-connection FIFO queue (writePump)
// - Clients that cannot keep up are dropped rather than stalling the room
// - Chat is rate limited per connection with golang.org/x/time/rate
// - Read size is capped by --max-message-size
// - /qr renders a QR code of the room URL, backed by go-qrcode
// - /status reports the room's current phase, players, admin and drawer

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"

	"github.com/Seednode/scribble/room"
)

const sendQueueSize = 64

type Client struct {
	conn *websocket.Conn
	send chan room.Message
	id   string
	chat *rate.Limiter
}

// Hub tracks live websocket clients and delivers room output to them.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func newHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Send implements room.Sender. A client whose queue is full is dropped.
func (h *Hub) Send(connID string, msg room.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, connID)
		close(c.send)
	}
}

func (h *Hub) attach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
}

func (h *Hub) detach(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
		close(c.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(ctx context.Context, cfg *Config, h *Hub, rm *room.Room) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "GAMES: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan room.Message, sendQueueSize),
			id:   uuid.NewString(),
			chat: rate.NewLimiter(rate.Limit(cfg.chatRate), cfg.chatBurst),
		}

		h.attach(client)

		logf(cfg, "GAMES: Connection %s opened from %s (%d connected)", client.id, realIP(r), h.count())

		go client.writePump()
		client.readPump(ctx, cfg, h, rm)

		logf(cfg, "GAMES: Connection %s closed", client.id)
	}
}

func (c *Client) readPump(ctx context.Context, cfg *Config, h *Hub, rm *room.Room) {
	defer func() {
		h.detach(c)
		if err := rm.Submit(ctx, room.Event{Type: room.EventDisconnect, Conn: c.id}); err != nil && !errors.Is(err, room.ErrRoomClosed) && !errors.Is(err, context.Canceled) {
			logErr(cfg, err)
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(cfg.maxMessageSize)

	for {
		var env room.Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}

		ev, err := room.ParseEvent(c.id, env)
		if err != nil {
			// ignore unknown types
			continue
		}

		if ev.Type == room.EventChatMessage && !c.chat.Allow() {
			h.Send(c.id, room.Message{
				Type: room.EventRejected,
				Data: room.RejectedPayload{Event: ev.Type, Reason: "slow down"},
			})
			continue
		}

		if err := rm.Submit(ctx, ev); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func serveStatus(cfg *Config, rm *room.Room, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		st, err := rm.Status(r.Context())
		if err != nil {
			http.Error(w, "room unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(st); err != nil {
			errs <- err
		}
	}
}

// qrHandler renders a PNG QR code of the room URL.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /.../qr; strip it to get the room URL.
		path := strings.TrimSuffix(r.URL.Path, "qr")
		url := scheme + "://" + r.Host + path

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

// registerScribble sets up routes so that:
//   - $prefix/ws     → WebSocket for the room
//   - $prefix/qr     → PNG QR code for the room URL
//   - $prefix/status → JSON snapshot of the room
func registerScribble(ctx context.Context, cfg *Config, mux *httprouter.Router, h *Hub, rm *room.Room, errs chan<- error) {
	mux.GET(cfg.prefix+"/ws", serveWS(ctx, cfg, h, rm))

	mux.GET(cfg.prefix+"/qr", qrHandler(cfg))

	mux.GET(cfg.prefix+"/status", serveStatus(cfg, rm, errs))
}
