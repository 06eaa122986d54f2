package domain

import (
	"math/rand"
	"time"
)

// Points awarded for a first-time correct guess
const (
	GuesserPoints = 50
	DrawerPoints  = 10
)

// Room is the full state of one game room. It carries no locking of its
// own: all access is serialized by the owning GameSession.
type Room struct {
	Code     string
	Players  []*Player // insertion order = join order
	Settings Settings
	Status   Status
	Phase    Phase

	Round       int    // 1-indexed while playing
	DrawerID    string // non-empty iff phase is selecting/drawing/review
	Word        string // secret, never broadcast outside review
	Masked      string // public masked form, spaces preserved
	WordChoices []string

	Drawn   map[string]bool // player ids that drew in the current round-cycle
	Guessed map[string]bool // player ids that guessed correctly this turn

	TurnStartedAt time.Time
	CreatedAt     time.Time
}

// NewRoom creates an empty room in the lobby
func NewRoom(code string, settings Settings) *Room {
	return &Room{
		Code:      code,
		Settings:  settings,
		Status:    StatusLobby,
		Phase:     PhaseNone,
		Drawn:     make(map[string]bool),
		Guessed:   make(map[string]bool),
		CreatedAt: time.Now(),
	}
}

// Player returns the player with the given id, or nil
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Host returns the current host, or nil if the room is empty
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// AddPlayer appends a player in join order. The first player to join
// becomes the host.
func (r *Room) AddPlayer(p *Player) error {
	if len(r.Players) >= r.Settings.MaxPlayers {
		return ErrRoomFull
	}
	if len(r.Players) == 0 {
		p.IsHost = true
	}
	r.Players = append(r.Players, p)
	return nil
}

// RemovePlayer removes the player with the given id and reports whether
// the removed player was the host and/or the current drawer. If the host
// left and players remain, a new host is chosen uniformly at random.
func (r *Room) RemovePlayer(id string) (wasHost, wasDrawer bool, err error) {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, false, ErrPlayerNotFound
	}

	removed := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	delete(r.Drawn, id)
	delete(r.Guessed, id)

	wasHost = removed.IsHost
	wasDrawer = r.DrawerID == id

	if wasHost && len(r.Players) > 0 {
		r.Players[rand.Intn(len(r.Players))].IsHost = true
	}
	if wasDrawer {
		r.DrawerID = ""
	}
	return wasHost, wasDrawer, nil
}

// EligibleDrawers returns the players that have not drawn yet in the
// current round-cycle, in join order.
func (r *Room) EligibleDrawers() []*Player {
	eligible := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !r.Drawn[p.ID] {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// CycleComplete reports whether every current player has drawn this round
func (r *Room) CycleComplete() bool {
	return len(r.EligibleDrawers()) == 0
}

// AllGuessed reports whether every non-drawer player has guessed correctly
// this turn. A room with no eligible guessers never satisfies it.
func (r *Room) AllGuessed() bool {
	guessers := 0
	for _, p := range r.Players {
		if p.ID == r.DrawerID {
			continue
		}
		guessers++
		if !r.Guessed[p.ID] {
			return false
		}
	}
	return guessers > 0
}

// ResetTurn clears the per-turn state
func (r *Room) ResetTurn() {
	r.DrawerID = ""
	r.Word = ""
	r.Masked = ""
	r.WordChoices = nil
	r.Guessed = make(map[string]bool)
}

// ResetGame clears all round and turn state and zeroes every score,
// returning the room to the lobby.
func (r *Room) ResetGame() {
	r.ResetTurn()
	r.Status = StatusLobby
	r.Phase = PhaseNone
	r.Round = 0
	r.Drawn = make(map[string]bool)
	for _, p := range r.Players {
		p.Score = 0
	}
}

// PublicView builds the broadcast-safe snapshot of the room: the secret
// word appears only in its masked form, except during review where it is
// revealed; the pending word choices never appear at all.
func (r *Room) PublicView() *RoomView {
	players := make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerInfo{
			ID:         p.ID,
			Name:       p.Name,
			Avatar:     p.Avatar,
			Score:      p.Score,
			IsHost:     p.IsHost,
			HasGuessed: r.Guessed[p.ID],
		})
	}

	word := ""
	switch r.Phase {
	case PhaseDrawing:
		word = r.Masked
	case PhaseReview:
		word = r.Word
	}

	return &RoomView{
		RoomCode: r.Code,
		Status:   r.Status,
		Phase:    r.Phase,
		Settings: r.Settings,
		Round:    r.Round,
		DrawerID: r.DrawerID,
		Word:     word,
		Players:  players,
	}
}

// RoomView is the public snapshot broadcast to every client in a room
type RoomView struct {
	RoomCode string       `json:"roomCode"`
	Status   Status       `json:"status"`
	Phase    Phase        `json:"phase"`
	Settings Settings     `json:"settings"`
	Round    int          `json:"round"`
	DrawerID string       `json:"drawerId,omitempty"`
	Word     string       `json:"word,omitempty"`
	Players  []PlayerInfo `json:"players"`
}
