package models

import "time"

// GameShare maps a share code to a specific game blob. Shares are immutable
// once created and are persisted at _shares/{code}.json.
type GameShare struct {
	Code      string    `json:"code"`
	GroupID   string    `json:"groupId"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
}
