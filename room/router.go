/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

// Sender delivers a message to one connection. Implementations must not
// block and must preserve the order of messages sent to the same connection.
type Sender interface {
	Send(connID string, msg Message)
}

// Router addresses outbound events to registered connections only.
type Router struct {
	registry *Registry
	out      Sender
}

func NewRouter(registry *Registry, out Sender) *Router {
	return &Router{registry: registry, out: out}
}

// Unicast is a no-op if connID is no longer registered.
func (r *Router) Unicast(connID, event string, data any) {
	if _, ok := r.registry.Lookup(connID); !ok {
		return
	}

	r.out.Send(connID, Message{Type: event, Data: data})
}

// Broadcast sends to every registered connection except the one named by
// except. An empty except excludes nobody.
func (r *Router) Broadcast(event string, data any, except string) {
	msg := Message{Type: event, Data: data}

	for _, id := range r.registry.Connections() {
		if id == except {
			continue
		}

		r.out.Send(id, msg)
	}
}
