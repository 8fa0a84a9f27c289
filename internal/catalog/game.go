package catalog

import (
	"strings"
	"time"
)

const (
	DefaultMinPlayers = 1
	DefaultMaxPlayers = 8
)

// Game is one board game catalog entry as served by the API.
// Field order matches the wire format.
type Game struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	Metadata      *Metadata `json:"metadata"`
	MinPlayers    int       `json:"min_players"`
	MaxPlayers    int       `json:"max_players"`
	PlayTime      *int      `json:"play_time"`
	AvgRating     Rating    `json:"avg_rating"`
	YearPublished *int      `json:"year_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Matches reports whether needle occurs in the name or description,
// ignoring case. An empty needle matches every game.
func (g Game) Matches(needle string) bool {
	if needle == "" {
		return true
	}
	lowered := strings.ToLower(needle)
	if strings.Contains(strings.ToLower(g.Name), lowered) {
		return true
	}
	return g.Description != nil && strings.Contains(strings.ToLower(*g.Description), lowered)
}

// PlayerRangeValid reports whether max_players is at least min_players.
// Stored data is never rewritten when this is false.
func (g Game) PlayerRangeValid() bool {
	return g.MaxPlayers >= g.MinPlayers
}

// StringPtr returns a pointer to value, or nil for an empty string.
func StringPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// IntPtr returns a pointer to value.
func IntPtr(value int) *int {
	return &value
}
