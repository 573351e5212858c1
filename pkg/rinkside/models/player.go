package models

// Player is one roster entry. Team is "1", "2", or "noteam". IDs are Unix
// millisecond timestamps assigned at creation.
type Player struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Active bool   `json:"active"`
	Points int    `json:"points"`
}
