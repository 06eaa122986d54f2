package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sketchparty/internal/config"
	"sketchparty/internal/domain"
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const sweepInterval = 10 * time.Minute

// GameHub owns every live room session plus the player-to-room index.
// It is the only structure shared across rooms; sessions never touch
// each other.
type GameHub struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
	byPlayer map[string]string // playerID -> room code

	cfg    config.GameConfig
	sink   EventSink
	logger *slog.Logger
	done   chan struct{}
}

// NewGameHub creates a new hub. The sink is handed to every session it
// creates.
func NewGameHub(cfg config.GameConfig, sink EventSink, logger *slog.Logger) *GameHub {
	hub := &GameHub{
		sessions: make(map[string]*GameSession),
		byPlayer: make(map[string]string),
		cfg:      cfg,
		sink:     sink,
		logger:   logger,
		done:     make(chan struct{}),
	}

	go hub.sweepLoop()

	return hub
}

// CreateRoom creates a room with the given host as its first player.
// The patch is applied on top of the default settings.
func (h *GameHub) CreateRoom(playerID, name, avatar string, patch domain.SettingsPatch) (*GameSession, *domain.RoomView, error) {
	settings, err := domain.DefaultSettings().Apply(patch)
	if err != nil {
		return nil, nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var code string
	for attempts := 0; ; attempts++ {
		if attempts == 10 {
			return nil, nil, fmt.Errorf("failed to generate unique room code")
		}
		code, err = h.generateRoomCode()
		if err != nil {
			return nil, nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := h.sessions[code]; !exists {
			break
		}
	}

	room := domain.NewRoom(code, settings)
	session := NewGameSession(room, h.cfg, h.sink, h.logger)

	view, err := session.Join(playerID, name, avatar)
	if err != nil {
		session.Close()
		return nil, nil, err
	}

	h.sessions[code] = session
	h.byPlayer[playerID] = code

	h.logger.Info("room created", "roomCode", code, "hostID", playerID)

	return session, view, nil
}

// JoinRoom adds a player to an existing room
func (h *GameHub) JoinRoom(roomCode, playerID, name, avatar string) (*GameSession, *domain.RoomView, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, nil, domain.ErrRoomNotFound
	}

	view, err := session.Join(playerID, name, avatar)
	if err != nil {
		return nil, nil, err
	}

	h.byPlayer[playerID] = roomCode

	return session, view, nil
}

// LeaveRoom removes a player from whatever room they are in. The last
// player out deletes the room.
func (h *GameHub) LeaveRoom(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	roomCode, ok := h.byPlayer[playerID]
	if !ok {
		return
	}
	delete(h.byPlayer, playerID)

	session, ok := h.sessions[roomCode]
	if !ok {
		return
	}

	if empty := session.Leave(playerID); empty {
		delete(h.sessions, roomCode)
		h.logger.Info("room deleted", "roomCode", roomCode)
	}
}

// Get returns a session by room code
func (h *GameHub) Get(roomCode string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return session, nil
}

// FindByPlayer returns the session the player currently belongs to
func (h *GameHub) FindByPlayer(playerID string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomCode, ok := h.byPlayer[playerID]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return session, nil
}

// Delete force-removes a room, cancelling its timer
func (h *GameHub) Delete(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleteLocked(roomCode)
}

// RoomCount returns the number of active rooms
func (h *GameHub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// PlayerCount returns the total number of players across all rooms
func (h *GameHub) PlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.PlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *GameHub) Close() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
	h.byPlayer = make(map[string]string)
}

func (h *GameHub) deleteLocked(roomCode string) {
	session, ok := h.sessions[roomCode]
	if !ok {
		return
	}
	session.Close()
	delete(h.sessions, roomCode)
	for playerID, code := range h.byPlayer {
		if code == roomCode {
			delete(h.byPlayer, playerID)
		}
	}
	h.logger.Info("room deleted", "roomCode", roomCode)
}

// generateRoomCode generates a random room code
func (h *GameHub) generateRoomCode() (string, error) {
	b := make([]byte, h.cfg.RoomCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	code := make([]byte, len(b))
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}
	return string(code), nil
}

// sweepLoop drops rooms whose last player left without the registry
// hearing about it. Normal teardown happens in LeaveRoom.
func (h *GameHub) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.sweepEmpty()
		}
	}
}

func (h *GameHub) sweepEmpty() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomCode, session := range h.sessions {
		if session.PlayerCount() == 0 {
			h.deleteLocked(roomCode)
		}
	}
}
