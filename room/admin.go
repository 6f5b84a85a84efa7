/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

// AdminElector tracks which connection may start rounds. The admin is the
// earliest-joined connection still present.
type AdminElector struct {
	registry *Registry
	connID   string
}

func NewAdminElector(registry *Registry) *AdminElector {
	return &AdminElector{registry: registry}
}

func (a *AdminElector) Current() string {
	return a.connID
}

func (a *AdminElector) IsAdmin(connID string) bool {
	return connID != "" && connID == a.connID
}

// Joined returns true if connID was just made admin.
func (a *AdminElector) Joined(connID string) bool {
	if a.connID != "" {
		return false
	}

	a.connID = connID

	return true
}

// Left must be called after the player has been removed from the registry.
// It returns the connection promoted to admin, if any.
func (a *AdminElector) Left(connID string) (string, bool) {
	if connID != a.connID {
		return "", false
	}

	next, ok := a.registry.First()
	if !ok {
		a.connID = ""
		return "", false
	}

	a.connID = next.ConnID

	return a.connID, true
}
