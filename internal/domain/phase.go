package domain

// Status represents the lifecycle state of a room
type Status string

const (
	StatusLobby   Status = "LOBBY"   // Waiting for players, settings mutable
	StatusPlaying Status = "PLAYING" // Game in progress
	StatusEnded   Status = "ENDED"   // All rounds complete, awaiting reset
)

// Phase represents the phase within a turn while a game is running
type Phase string

const (
	PhaseNone      Phase = "NONE"      // No turn in progress (lobby / ended)
	PhaseStarting  Phase = "STARTING"  // Short countdown before the first turn
	PhaseSelecting Phase = "SELECTING" // Drawer is picking a word
	PhaseDrawing   Phase = "DRAWING"   // Drawer draws, others guess
	PhaseReview    Phase = "REVIEW"    // Word revealed, scores shown
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}
