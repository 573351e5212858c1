package models

import "time"

// Group is the persisted group document, stored whole at _groups/{id}.json.
// AdminCode is unique across all groups at creation time.
type Group struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	AdminCode string         `json:"adminCode"`
	CreatedAt time.Time      `json:"createdAt"`
	Members   []MemberAccess `json:"members"`
}

// MemberAccess is a member access code within a group. Revocation flips
// Active rather than deleting the entry, so a revoked code can never be
// reissued to someone else.
type MemberAccess struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// SasTokenSet carries container SAS URLs handed to clients for direct
// storage access. Never persisted; minted fresh on every request. WriteURL
// is nil when only read access was granted.
type SasTokenSet struct {
	ReadURL   string    `json:"readUrl"`
	WriteURL  *string   `json:"writeUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
