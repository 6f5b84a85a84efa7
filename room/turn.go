/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseChoosingWord
	PhaseDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseChoosingWord:
		return "choosing"
	case PhaseDrawing:
		return "drawing"
	default:
		return "idle"
	}
}

// Mask hides every character of word behind a blank glyph.
func Mask(word string) string {
	return strings.Repeat(maskGlyph, utf8.RuneCountInString(word))
}

// Turn owns drawer and word selection. The drawer is tracked by connection,
// the display name is kept only for announcements.
type Turn struct {
	registry *Registry
	router   *Router
	pool     *WordPool
	intn     IntN

	phase   Phase
	round   uint64
	drawer  Player
	options []string
	word    string
}

func NewTurn(registry *Registry, router *Router, pool *WordPool, intn IntN) *Turn {
	return &Turn{
		registry: registry,
		router:   router,
		pool:     pool,
		intn:     intn,
	}
}

func (t *Turn) Phase() Phase {
	return t.phase
}

// Round increments every time a drawer is picked.
func (t *Turn) Round() uint64 {
	return t.round
}

// Drawer returns the current drawer, if a round is active.
func (t *Turn) Drawer() (Player, bool) {
	if t.phase == PhaseIdle {
		return Player{}, false
	}

	return t.drawer, true
}

func (t *Turn) Word() string {
	return t.word
}

// Start picks a drawer uniformly from all present players and offers them
// a fresh set of words. Any active round is replaced. Admin checks are the
// caller's responsibility.
func (t *Turn) Start() (Player, error) {
	n := t.registry.Len()
	if n == 0 {
		return Player{}, ErrNoPlayers
	}

	drawer := t.registry.At(t.intn(n))
	options := t.pool.Sample(WordChoices, t.intn)

	t.round++
	t.phase = PhaseChoosingWord
	t.drawer = drawer
	t.options = options
	t.word = ""

	t.router.Unicast(drawer.ConnID, EventWordOptions, slices.Clone(options))
	t.router.Broadcast(EventSetDrawer, drawer.Username, "")
	t.router.Broadcast(EventDrawerChoosing, drawer.Username, "")

	return drawer, nil
}

// ChooseWord accepts one of the offered words from the drawer.
func (t *Turn) ChooseWord(connID, word string) error {
	if t.phase != PhaseChoosingWord {
		return ErrNotChoosing
	}
	if connID != t.drawer.ConnID {
		return ErrNotDrawer
	}
	if word == "" {
		return ErrEmptyWord
	}
	if !slices.Contains(t.options, word) {
		return ErrWordNotOffered
	}

	t.phase = PhaseDrawing
	t.word = word

	t.router.Unicast(t.drawer.ConnID, EventWordChosenConfirm, word)
	t.router.Broadcast(EventWordMask, Mask(word), t.drawer.ConnID)

	return nil
}

// Left ends the round if connID was drawing. It reports whether it did.
func (t *Turn) Left(connID string) bool {
	if t.phase == PhaseIdle || connID != t.drawer.ConnID {
		return false
	}

	t.end()

	return true
}

// Expire ends the given round if it is still the active one.
func (t *Turn) Expire(round uint64) bool {
	if t.phase == PhaseIdle || round != t.round {
		return false
	}

	t.end()

	return true
}

func (t *Turn) end() {
	t.phase = PhaseIdle
	t.drawer = Player{}
	t.options = nil
	t.word = ""

	t.router.Broadcast(EventDrawerChoosing, waitingStatus, "")
}
