package ws

import (
	"encoding/json"
	"time"

	"sketchparty/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom     MessageType = "create_room"
	MsgJoinRoom       MessageType = "join_room"
	MsgLeaveRoom      MessageType = "leave_room"
	MsgUpdateSettings MessageType = "update_settings"
	MsgStartGame      MessageType = "start_game"
	MsgSelectWord     MessageType = "select_word"
	MsgGuess          MessageType = "guess"
	MsgChat           MessageType = "chat"
	MsgDraw           MessageType = "draw"
	MsgResetLobby     MessageType = "reset_lobby"
	MsgPing           MessageType = "ping"
)

// Server → Client message types
const (
	MsgJoined      MessageType = "joined"
	MsgRoomUpdate  MessageType = "room_update"
	MsgTimerTick   MessageType = "timer_tick"
	MsgWordOptions MessageType = "word_options" // drawer only
	MsgTurnWord    MessageType = "turn_word"    // drawer only
	MsgCloseGuess  MessageType = "close_guess"  // guesser only
	MsgGameStarted MessageType = "game_started"
	MsgGameReset   MessageType = "game_reset"
	MsgError       MessageType = "error"
	MsgPong        MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// CreateRoomPayload is the payload for create_room
type CreateRoomPayload struct {
	Name     string               `json:"name"`
	Avatar   string               `json:"avatar"`
	Settings domain.SettingsPatch `json:"settings"`
}

// JoinRoomPayload is the payload for join_room
type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// UpdateSettingsPayload is the payload for update_settings
type UpdateSettingsPayload struct {
	Settings domain.SettingsPatch `json:"settings"`
}

// SelectWordPayload is the payload for select_word
type SelectWordPayload struct {
	Word string `json:"word"`
}

// TextPayload carries a chat line or a guess
type TextPayload struct {
	Text string `json:"text"`
}

// Server message payloads

// JoinedPayload confirms room entry to the joining client
type JoinedPayload struct {
	PlayerID string           `json:"playerId"`
	RoomCode string           `json:"roomCode"`
	Room     *domain.RoomView `json:"room"`
}

// TimerTickPayload carries the remaining seconds of the active phase
type TimerTickPayload struct {
	SecondsRemaining int `json:"secondsRemaining"`
}

// WordOptionsPayload carries the drawer's word choices
type WordOptionsPayload struct {
	Words []string `json:"words"`
}

// TurnWordPayload carries the drawer's secret word
type TurnWordPayload struct {
	Word string `json:"word"`
}

// ChatPayload is a relayed chat line. System lines announce correct
// guesses without echoing the guessed word.
type ChatPayload struct {
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
	IsSystem bool   `json:"isSystem,omitempty"`
}

// ErrorPayload is sent when a command is rejected
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeRoomNotFound   = "ROOM_NOT_FOUND"
	ErrCodeRoomFull       = "ROOM_FULL"
	ErrCodeInvalidAction  = "INVALID_ACTION"
	ErrCodeNotHost        = "NOT_HOST"
	ErrCodeNotDrawer      = "NOT_DRAWER"
	ErrCodeBadSettings    = "BAD_SETTINGS"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)
