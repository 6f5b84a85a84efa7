/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import "encoding/json"

// Relay passes canvas events from one connection to every other. Nothing is
// stored; late joiners start from a blank canvas.
type Relay struct {
	registry *Registry
	router   *Router
}

func NewRelay(registry *Registry, router *Router) *Relay {
	return &Relay{registry: registry, router: router}
}

// Stroke rebroadcasts payload verbatim under event. Senders that have not
// joined are ignored.
func (r *Relay) Stroke(sender, event string, payload json.RawMessage) error {
	if _, ok := r.registry.Lookup(sender); !ok {
		return ErrUnknownPlayer
	}

	var data any
	if len(payload) > 0 {
		data = payload
	}

	r.router.Broadcast(event, data, sender)

	return nil
}
