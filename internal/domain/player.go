package domain

import "time"

// Player represents a player in a room. The ID is connection-scoped:
// it lives exactly as long as the websocket that created it.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Score    int       `json:"score"`
	IsHost   bool      `json:"isHost"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewPlayer creates a new player with the given ID, display name and avatar
func NewPlayer(id, name, avatar string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Avatar:   avatar,
		JoinedAt: time.Now(),
	}
}

// PlayerInfo is the broadcast-safe view of a player
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Score      int    `json:"score"`
	IsHost     bool   `json:"isHost"`
	HasGuessed bool   `json:"hasGuessed"`
}
