/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

// Player is a joined connection. Display names are not unique.
type Player struct {
	ConnID   string
	Username string
}

// Registry holds present players in join order. It is owned by the room
// actor and is not safe for concurrent use.
type Registry struct {
	players []Player
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Join appends a player. A connection may only join once.
func (r *Registry) Join(connID, username string) (Player, error) {
	if _, ok := r.Lookup(connID); ok {
		return Player{}, ErrAlreadyJoined
	}

	if username == "" {
		username = defaultUsername
	}

	p := Player{ConnID: connID, Username: username}
	r.players = append(r.players, p)

	return p, nil
}

// Leave removes the player on connID, if any.
func (r *Registry) Leave(connID string) (Player, bool) {
	for i, p := range r.players {
		if p.ConnID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return p, true
		}
	}

	return Player{}, false
}

func (r *Registry) Lookup(connID string) (Player, bool) {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p, true
		}
	}

	return Player{}, false
}

// Connections returns connection IDs in join order.
func (r *Registry) Connections() []string {
	ids := make([]string, 0, len(r.players))
	for _, p := range r.players {
		ids = append(ids, p.ConnID)
	}

	return ids
}

// Snapshot is the playersUpdate payload.
func (r *Registry) Snapshot() []PlayerEntry {
	entries := make([]PlayerEntry, 0, len(r.players))
	for _, p := range r.players {
		entries = append(entries, PlayerEntry{Username: p.Username})
	}

	return entries
}

// First returns the earliest-joined player still present.
func (r *Registry) First() (Player, bool) {
	if len(r.players) == 0 {
		return Player{}, false
	}

	return r.players[0], true
}

func (r *Registry) At(i int) Player {
	return r.players[i]
}

func (r *Registry) Len() int {
	return len(r.players)
}
