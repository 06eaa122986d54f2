package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"sketchparty/internal/app"
	"sketchparty/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents one WebSocket connection. The connection is the
// player: the generated playerID lives exactly as long as the socket.
type Client struct {
	conn     *websocket.Conn
	hub      *app.GameHub
	registry *Registry
	playerID string
	name     string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, hub *app.GameHub, registry *Registry, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		hub:      hub,
		registry: registry,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Send queues a message for delivery to this connection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close tears down the connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.registry.Remove(c.playerID)
		c.hub.LeaveRoom(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgCreateRoom:
		c.handleCreateRoom(msg.Payload)
	case MsgJoinRoom:
		c.handleJoinRoom(msg.Payload)
	case MsgLeaveRoom:
		c.handleLeaveRoom()
	case MsgUpdateSettings:
		c.handleUpdateSettings(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgSelectWord:
		c.handleSelectWord(msg.Payload)
	case MsgGuess, MsgChat:
		c.handleChat(msg.Payload)
	case MsgDraw:
		c.handleDraw(msg.Payload)
	case MsgResetLobby:
		c.handleResetLobby()
	case MsgPing:
		c.Send(NewServerMessage(MsgPong, nil))
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleCreateRoom creates a room with this connection as its host
func (c *Client) handleCreateRoom(raw json.RawMessage) {
	var payload CreateRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Name == "" {
		c.sendError(ErrCodeInvalidMessage, "Display name is required")
		return
	}
	if _, ok := c.registry.RoomCode(c.playerID); ok {
		c.sendError(ErrCodeInvalidAction, "Already in a room")
		return
	}

	session, view, err := c.hub.CreateRoom(c.playerID, payload.Name, payload.Avatar, payload.Settings)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSettings) {
			c.sendError(ErrCodeBadSettings, "Settings value out of range")
			return
		}
		c.sendError(ErrCodeInternalError, "Failed to create room")
		return
	}

	c.name = payload.Name
	c.registry.Add(session.RoomCode(), c)
	c.sendJoined(session.RoomCode(), view)
}

// handleJoinRoom joins this connection to an existing room
func (c *Client) handleJoinRoom(raw json.RawMessage) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Name == "" || payload.RoomCode == "" {
		c.sendError(ErrCodeInvalidMessage, "Room code and display name are required")
		return
	}
	if _, ok := c.registry.RoomCode(c.playerID); ok {
		c.sendError(ErrCodeInvalidAction, "Already in a room")
		return
	}

	session, view, err := c.hub.JoinRoom(payload.RoomCode, c.playerID, payload.Name, payload.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			c.sendError(ErrCodeRoomNotFound, "Room not found")
		case errors.Is(err, domain.ErrRoomFull):
			c.sendError(ErrCodeRoomFull, "Room is full")
		default:
			c.sendError(ErrCodeInternalError, "Failed to join room")
		}
		return
	}

	c.name = payload.Name
	c.registry.Add(session.RoomCode(), c)
	c.sendJoined(session.RoomCode(), view)
}

// handleLeaveRoom removes this connection from its room
func (c *Client) handleLeaveRoom() {
	c.registry.Remove(c.playerID)
	c.hub.LeaveRoom(c.playerID)
}

// handleUpdateSettings applies a settings patch (host, lobby only)
func (c *Client) handleUpdateSettings(raw json.RawMessage) {
	var payload UpdateSettingsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}

	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		c.sendError(ErrCodeRoomNotFound, "Not in a room")
		return
	}

	if _, err := session.UpdateSettings(c.playerID, payload.Settings); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can change settings")
		case errors.Is(err, domain.ErrInvalidPhase):
			c.sendError(ErrCodeInvalidAction, "Settings are locked while playing")
		case errors.Is(err, domain.ErrInvalidSettings):
			c.sendError(ErrCodeBadSettings, "Settings value out of range")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleStartGame starts the game (host only)
func (c *Client) handleStartGame() {
	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		c.sendError(ErrCodeRoomNotFound, "Not in a room")
		return
	}

	if _, err := session.StartGame(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can start the game")
		case errors.Is(err, domain.ErrNotEnoughPlayers):
			c.sendError(ErrCodeInvalidAction, "Not enough players to start")
		case errors.Is(err, domain.ErrInvalidPhase):
			c.sendError(ErrCodeInvalidAction, "Game already started")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// handleSelectWord commits the drawer's word choice
func (c *Client) handleSelectWord(raw json.RawMessage) {
	var payload SelectWordPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Word == "" {
		c.sendError(ErrCodeInvalidMessage, "Word is required")
		return
	}

	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		return
	}

	// Stale selections (late or duplicate) are dropped silently: message
	// delivery order over the network is not guaranteed.
	if err := session.SelectWord(c.playerID, payload.Word); err != nil {
		if errors.Is(err, domain.ErrNotDrawer) {
			c.sendError(ErrCodeNotDrawer, "Only the drawer picks the word")
		}
	}
}

// handleChat relays a chat line, intercepting guesses while a turn is
// being drawn. Correct guesses never reach the room as text.
func (c *Client) handleChat(raw json.RawMessage) {
	var payload TextPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Text == "" {
		return
	}

	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		return
	}
	roomCode := session.RoomCode()

	correct, err := session.SubmitGuess(c.playerID, payload.Text)
	switch {
	case err == nil && correct:
		// Announce without echoing the word
		c.registry.Broadcast(roomCode, NewServerMessage(MsgChat, &ChatPayload{
			Text:     c.name + " guessed the word!",
			IsSystem: true,
		}))
		return
	case errors.Is(err, domain.ErrNotDrawer):
		// The drawer cannot chat during their own turn; anything they
		// type could spell out the word.
		return
	}

	c.registry.Broadcast(roomCode, NewServerMessage(MsgChat, &ChatPayload{
		PlayerID: c.playerID,
		Name:     c.name,
		Text:     payload.Text,
	}))
}

// handleDraw relays a stroke to the rest of the room. Strokes carry an
// opaque payload the server never interprets; only the current drawer's
// strokes are forwarded, and only while drawing.
func (c *Client) handleDraw(raw json.RawMessage) {
	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		return
	}
	if !session.CanDraw(c.playerID) {
		return
	}

	c.registry.BroadcastExcept(session.RoomCode(), c.playerID,
		NewServerMessage(MsgDraw, raw))
}

// handleResetLobby returns an ended game to the lobby (host only)
func (c *Client) handleResetLobby() {
	session, err := c.hub.FindByPlayer(c.playerID)
	if err != nil {
		c.sendError(ErrCodeRoomNotFound, "Not in a room")
		return
	}

	if _, err := session.ResetToLobby(c.playerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotHost):
			c.sendError(ErrCodeNotHost, "Only the host can reset the game")
		case errors.Is(err, domain.ErrInvalidPhase):
			c.sendError(ErrCodeInvalidAction, "Game is still running")
		default:
			c.sendError(ErrCodeInternalError, err.Error())
		}
	}
}

// sendJoined confirms room entry to this client
func (c *Client) sendJoined(roomCode string, view *domain.RoomView) {
	c.Send(NewServerMessage(MsgJoined, &JoinedPayload{
		PlayerID: c.playerID,
		RoomCode: roomCode,
		Room:     view,
	}))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	c.Send(NewServerMessage(MsgError, &ErrorPayload{
		Code:    code,
		Message: message,
	}))
}
