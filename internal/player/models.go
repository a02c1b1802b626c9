package player

import (
	"strings"
	"time"
)

type PlayerRole string

const (
	PlayerRoleUser  PlayerRole = "user"
	PlayerRoleAdmin PlayerRole = "admin"
)

func (r PlayerRole) String() string {
	return string(r)
}

func (r PlayerRole) IsValid() bool {
	return r == PlayerRoleUser || r == PlayerRoleAdmin
}

// ParsePlayerRole maps unknown roles to PlayerRoleUser.
func ParsePlayerRole(s string) PlayerRole {
	if r := PlayerRole(strings.ToLower(strings.TrimSpace(s))); r.IsValid() {
		return r
	}
	return PlayerRoleUser
}

// Player is an account that can be seated in games.
type Player struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url"`
	Role        PlayerRole `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p Player) IsAdmin() bool {
	return p.Role == PlayerRoleAdmin
}

// Profile is the public view of a player, without contact details.
type Profile struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url"`
	Role        PlayerRole `json:"role"`
	JoinedAt    time.Time  `json:"joined_at"`
}

func (p Player) Profile() Profile {
	return Profile{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
		JoinedAt:    p.CreatedAt,
	}
}

func Profiles(players []Player) []Profile {
	out := make([]Profile, len(players))
	for i, p := range players {
		out[i] = p.Profile()
	}
	return out
}
