/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type delivery struct {
	conn string
	msg  Message
}

// recorder is a Sender that remembers everything it was asked to deliver.
type recorder struct {
	mu   sync.Mutex
	sent []delivery
}

func (r *recorder) Send(conn string, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, delivery{conn: conn, msg: msg})
}

func (r *recorder) all() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]delivery, len(r.sent))
	copy(out, r.sent)
	return out
}

// to returns the messages delivered to conn, in order.
func (r *recorder) to(conn string) []Message {
	var out []Message
	for _, d := range r.all() {
		if d.conn == conn {
			out = append(out, d.msg)
		}
	}
	return out
}

// ofType returns the deliveries of one event type, in order.
func (r *recorder) ofType(typ string) []delivery {
	var out []delivery
	for _, d := range r.all() {
		if d.msg.Type == typ {
			out = append(out, d)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

// scripted returns an IntN that yields vals in order (each reduced modulo n),
// then zero once they run out.
func scripted(vals ...int) IntN {
	var mu sync.Mutex
	i := 0
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(vals) {
			return 0
		}
		v := vals[i] % n
		i++
		return v
	}
}

func newTestRoom(t *testing.T, cfg Config) (*Room, *recorder) {
	t.Helper()
	if cfg.IntN == nil {
		cfg.IntN = scripted()
	}
	cfg.Logger = zerolog.Nop()
	rec := &recorder{}
	return New(cfg, rec), rec
}

// apply runs events synchronously, as the Run loop would.
func apply(r *Room, events ...Event) {
	for _, ev := range events {
		r.dispatch(ev)
	}
}

func join(conn, name string) Event {
	return Event{Type: EventJoin, Conn: conn, Text: name}
}

func leave(conn string) Event {
	return Event{Type: EventDisconnect, Conn: conn}
}

func start(conn string) Event {
	return Event{Type: EventStartGame, Conn: conn}
}

func choose(conn, word string) Event {
	return Event{Type: EventWordChosen, Conn: conn, Text: word}
}
