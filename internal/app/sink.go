package app

import "sketchparty/internal/domain"

// EventSink is the outbound port a session emits through. The transport
// layer implements it and fans the notifications out to connected
// clients. Drawer- and guesser-addressed calls must reach only that
// player's connection.
type EventSink interface {
	// RoomUpdated delivers the public room snapshot to everyone in the room
	RoomUpdated(roomCode string, view *domain.RoomView)

	// TimerTick reports the remaining seconds of the active phase
	TimerTick(roomCode string, secondsRemaining int)

	// WordOptions delivers the word choices to the current drawer only
	WordOptions(roomCode, drawerID string, options []string)

	// TurnAssigned delivers the chosen secret word to the drawer only
	TurnAssigned(roomCode, drawerID, word string)

	// CloseGuess tells one guesser their wrong guess was nearly right
	CloseGuess(roomCode, playerID string)

	// GameStarted announces the lobby-to-playing transition
	GameStarted(roomCode string)

	// GameReset announces the return to the lobby
	GameReset(roomCode string)
}
