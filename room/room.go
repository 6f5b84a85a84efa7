/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package room is the authoritative state for a single drawing-and-guessing
// room.
//
// Features:
// - Players are kept in join order; the earliest still-connected player is admin
// - Admin starts a round; the drawer is picked uniformly from everyone present
// - The drawer alone receives three distinct word options and the chosen word
// - Everyone else receives the word masked as blank glyphs
// - Canvas events are relayed to every other connection and never stored
// - A drawer disconnecting (or an optional timeout) returns the room to idle
// - All events are applied one at a time by a single goroutine (Run)
package room

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultInboxSize = 256

// Config controls a Room. Zero values pick sensible defaults.
type Config struct {
	Words         *WordPool
	IntN          IntN
	ChooseTimeout time.Duration
	RoundTimeout  time.Duration
	InboxSize     int
	Logger        zerolog.Logger
}

// Status is a point-in-time view of the room.
type Status struct {
	Phase      string   `json:"phase"`
	Round      uint64   `json:"round"`
	Players    []string `json:"players"`
	Admin      string   `json:"admin,omitempty"`
	Drawer     string   `json:"drawer,omitempty"`
	MaskedWord string   `json:"masked_word,omitempty"`
}

type Room struct {
	log zerolog.Logger

	registry *Registry
	admin    *AdminElector
	router   *Router
	turn     *Turn
	relay    *Relay

	chooseTimeout time.Duration
	roundTimeout  time.Duration
	timer         *time.Timer

	inbox     chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// New builds a room that delivers outbound events through out.
func New(cfg Config, out Sender) *Room {
	if cfg.Words == nil {
		cfg.Words, _ = NewWordPool(DefaultWords)
	}
	if cfg.IntN == nil {
		cfg.IntN = rand.IntN
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = defaultInboxSize
	}

	registry := NewRegistry()
	router := NewRouter(registry, out)

	return &Room{
		log:           cfg.Logger,
		registry:      registry,
		admin:         NewAdminElector(registry),
		router:        router,
		turn:          NewTurn(registry, router, cfg.Words, cfg.IntN),
		relay:         NewRelay(registry, router),
		chooseTimeout: cfg.ChooseTimeout,
		roundTimeout:  cfg.RoundTimeout,
		inbox:         make(chan Event, cfg.InboxSize),
		done:          make(chan struct{}),
	}
}

// Run applies events until ctx is cancelled.
func (r *Room) Run(ctx context.Context) {
	defer r.closeOnce.Do(func() { close(r.done) })

	for {
		select {
		case <-ctx.Done():
			r.stopTimer()
			return
		case ev := <-r.inbox:
			r.dispatch(ev)
		}
	}
}

// Submit queues ev for the room. Events from one caller are applied in the
// order they are submitted.
func (r *Room) Submit(ctx context.Context, ev Event) error {
	select {
	case <-r.done:
		return ErrRoomClosed
	default:
	}

	select {
	case r.inbox <- ev:
		return nil
	case <-r.done:
		return ErrRoomClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status asks the room goroutine for a snapshot.
func (r *Room) Status(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)

	if err := r.Submit(ctx, Event{Type: eventStatus, reply: reply}); err != nil {
		return Status{}, err
	}

	select {
	case st := <-reply:
		return st, nil
	case <-r.done:
		return Status{}, ErrRoomClosed
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}

func (r *Room) dispatch(ev Event) {
	err := r.handle(ev)
	if err == nil {
		return
	}

	r.log.Debug().Err(err).Str("event", ev.Type).Str("conn", ev.Conn).Msg("rejected")

	r.router.Unicast(ev.Conn, EventRejected, RejectedPayload{
		Event:  ev.Type,
		Reason: err.Error(),
	})
}

func (r *Room) handle(ev Event) error {
	switch ev.Type {
	case EventJoin:
		return r.join(ev.Conn, ev.Text)
	case EventChatMessage:
		r.chat(ev.Conn, ev.Text)
		return nil
	case EventStartGame:
		return r.startGame(ev.Conn)
	case EventWordChosen:
		return r.wordChosen(ev.Conn, ev.Text)
	case EventDrawBuffer, EventFill, EventClearCanvas:
		return r.relay.Stroke(ev.Conn, ev.Type, ev.Payload)
	case EventDisconnect:
		r.leave(ev.Conn)
		return nil
	case eventTurnTimeout:
		if r.turn.Expire(ev.round) {
			r.log.Info().Uint64("round", ev.round).Msg("round timed out")
		}
		return nil
	case eventStatus:
		ev.reply <- r.status()
		return nil
	default:
		return ErrUnknownEvent
	}
}

func (r *Room) join(connID, username string) error {
	p, err := r.registry.Join(connID, username)
	if err != nil {
		return err
	}

	r.log.Info().Str("player", p.Username).Str("conn", connID).Msg("joined")

	if r.admin.Joined(connID) {
		r.log.Info().Str("player", p.Username).Msg("admin assigned")
		r.router.Unicast(connID, EventYouAreAdmin, nil)
	}

	r.router.Broadcast(EventPlayerJoined, p.Username, "")
	r.router.Broadcast(EventPlayersUpdate, r.registry.Snapshot(), "")

	return nil
}

func (r *Room) chat(connID, text string) {
	if text == "" {
		return
	}

	username := defaultUsername
	if p, ok := r.registry.Lookup(connID); ok {
		username = p.Username
	}

	r.router.Broadcast(EventChatMessage, ChatPayload{Username: username, Message: text}, "")
}

func (r *Room) startGame(connID string) error {
	if !r.admin.IsAdmin(connID) {
		return ErrNotAdmin
	}

	drawer, err := r.turn.Start()
	if err != nil {
		return err
	}

	r.log.Info().Str("drawer", drawer.Username).Uint64("round", r.turn.Round()).Msg("round started")
	r.arm(r.chooseTimeout)

	return nil
}

func (r *Room) wordChosen(connID, word string) error {
	if _, ok := r.registry.Lookup(connID); !ok {
		return ErrUnknownPlayer
	}

	if err := r.turn.ChooseWord(connID, word); err != nil {
		return err
	}

	r.log.Debug().Str("word", word).Uint64("round", r.turn.Round()).Msg("word chosen")
	r.arm(r.roundTimeout)

	return nil
}

func (r *Room) leave(connID string) {
	p, ok := r.registry.Leave(connID)
	if !ok {
		return
	}

	r.log.Info().Str("player", p.Username).Str("conn", connID).Msg("left")

	r.router.Broadcast(EventPlayerLeft, p.Username, "")
	r.router.Broadcast(EventPlayersUpdate, r.registry.Snapshot(), "")

	if next, ok := r.admin.Left(connID); ok {
		if np, found := r.registry.Lookup(next); found {
			r.log.Info().Str("player", np.Username).Msg("admin reassigned")
		}
		r.router.Unicast(next, EventYouAreAdmin, nil)
	}

	if r.turn.Left(connID) {
		r.log.Info().Str("player", p.Username).Msg("drawer left")
		r.stopTimer()
	}
}

func (r *Room) status() Status {
	st := Status{
		Phase:   r.turn.Phase().String(),
		Round:   r.turn.Round(),
		Players: make([]string, 0, r.registry.Len()),
	}

	for _, e := range r.registry.Snapshot() {
		st.Players = append(st.Players, e.Username)
	}

	if p, ok := r.registry.Lookup(r.admin.Current()); ok {
		st.Admin = p.Username
	}

	if d, ok := r.turn.Drawer(); ok {
		st.Drawer = d.Username
	}

	if w := r.turn.Word(); w != "" {
		st.MaskedWord = Mask(w)
	}

	return st
}

// arm schedules expiry of the current round after d. Non-positive d disables it.
func (r *Room) arm(d time.Duration) {
	r.stopTimer()

	if d <= 0 {
		return
	}

	round := r.turn.Round()
	r.timer = time.AfterFunc(d, func() {
		err := r.Submit(context.Background(), Event{Type: eventTurnTimeout, round: round})
		if err != nil && !errors.Is(err, ErrRoomClosed) {
			r.log.Error().Err(err).Msg("round timeout")
		}
	})
}

func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
