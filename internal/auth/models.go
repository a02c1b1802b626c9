package auth

import (
	"time"
)

// PlayerAuthProvider links a player to one external login account.
type PlayerAuthProvider struct {
	ID             int       `json:"id"`
	PlayerID       int       `json:"player_id"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"-"`
	ProviderEmail  *string   `json:"provider_email"`
	CreatedAt      time.Time `json:"created_at"`
}
