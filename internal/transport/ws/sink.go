package ws

import (
	"log/slog"
	"sync"

	"sketchparty/internal/domain"
)

// Registry tracks which client connection sits in which room and
// implements app.EventSink by fanning session notifications out to
// them. Drawer- and guesser-addressed events go to exactly one
// connection; everything else is a room broadcast.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]*Client // roomCode -> playerID -> client
	byPlayer map[string]string             // playerID -> roomCode
	logger   *slog.Logger
}

// NewRegistry creates an empty connection registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		rooms:    make(map[string]map[string]*Client),
		byPlayer: make(map[string]string),
		logger:   logger,
	}
}

// Add places a client's connection in a room
func (r *Registry) Add(roomCode string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomCode] == nil {
		r.rooms[roomCode] = make(map[string]*Client)
	}
	r.rooms[roomCode][c.playerID] = c
	r.byPlayer[c.playerID] = roomCode
}

// Remove drops a client's connection from its room, if any
func (r *Registry) Remove(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomCode, ok := r.byPlayer[playerID]
	if !ok {
		return
	}
	delete(r.byPlayer, playerID)

	clients := r.rooms[roomCode]
	delete(clients, playerID)
	if len(clients) == 0 {
		delete(r.rooms, roomCode)
	}
}

// RoomCode returns the room a player's connection is registered in
func (r *Registry) RoomCode(playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roomCode, ok := r.byPlayer[playerID]
	return roomCode, ok
}

// Broadcast sends a message to every connection in a room
func (r *Registry) Broadcast(roomCode string, msg *ServerMessage) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.rooms[roomCode] {
		c.Send(msg)
	}
}

// BroadcastExcept sends a message to every connection in a room but one
func (r *Registry) BroadcastExcept(roomCode, exceptID string, msg *ServerMessage) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for playerID, c := range r.rooms[roomCode] {
		if playerID == exceptID {
			continue
		}
		c.Send(msg)
	}
}

// SendTo sends a message to a single player's connection
func (r *Registry) SendTo(playerID string, msg *ServerMessage) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomCode, ok := r.byPlayer[playerID]
	if !ok {
		return
	}
	if c, ok := r.rooms[roomCode][playerID]; ok {
		c.Send(msg)
	}
}

// app.EventSink implementation

// RoomUpdated broadcasts the public room snapshot
func (r *Registry) RoomUpdated(roomCode string, view *domain.RoomView) {
	r.Broadcast(roomCode, NewServerMessage(MsgRoomUpdate, view))
}

// TimerTick broadcasts the remaining phase time
func (r *Registry) TimerTick(roomCode string, secondsRemaining int) {
	r.Broadcast(roomCode, NewServerMessage(MsgTimerTick, &TimerTickPayload{
		SecondsRemaining: secondsRemaining,
	}))
}

// WordOptions delivers word choices to the drawer's connection only
func (r *Registry) WordOptions(roomCode, drawerID string, options []string) {
	r.SendTo(drawerID, NewServerMessage(MsgWordOptions, &WordOptionsPayload{
		Words: options,
	}))
}

// TurnAssigned delivers the secret word to the drawer's connection only
func (r *Registry) TurnAssigned(roomCode, drawerID, word string) {
	r.SendTo(drawerID, NewServerMessage(MsgTurnWord, &TurnWordPayload{
		Word: word,
	}))
}

// CloseGuess nudges a single guesser that they were nearly right
func (r *Registry) CloseGuess(roomCode, playerID string) {
	r.SendTo(playerID, NewServerMessage(MsgCloseGuess, nil))
}

// GameStarted announces the game start to the room
func (r *Registry) GameStarted(roomCode string) {
	r.Broadcast(roomCode, NewServerMessage(MsgGameStarted, nil))
}

// GameReset announces the return to lobby to the room
func (r *Registry) GameReset(roomCode string) {
	r.Broadcast(roomCode, NewServerMessage(MsgGameReset, nil))
}
