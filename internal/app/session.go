package app

import (
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"sketchparty/internal/config"
	"sketchparty/internal/domain"
	"sketchparty/internal/words"
)

const eventQueueSize = 100

// GameSession owns one room and serializes every mutation behind its
// mutex. The lock is never held across an outbound notification: sink
// calls are queued and delivered by the session's event goroutine.
type GameSession struct {
	mu     sync.Mutex
	room   *domain.Room
	cfg    config.GameConfig
	sink   EventSink
	logger *slog.Logger

	timer phaseTimer
	// seq is bumped on every phase change; timer callbacks capture the
	// value current when they were scheduled and bail out if it moved,
	// so an expiry can never act on a phase it did not belong to.
	seq    uint64
	hintAt map[int]bool // remaining-seconds marks at which a letter is revealed

	events chan func(EventSink)
	done   chan struct{}
	closed bool
}

// NewGameSession creates a session around an empty room
func NewGameSession(room *domain.Room, cfg config.GameConfig, sink EventSink, logger *slog.Logger) *GameSession {
	s := &GameSession{
		room:   room,
		cfg:    cfg,
		sink:   sink,
		logger: logger,
		events: make(chan func(EventSink), eventQueueSize),
		done:   make(chan struct{}),
	}

	go s.eventLoop()

	return s
}

// RoomCode returns the room code
func (s *GameSession) RoomCode() string {
	return s.room.Code
}

// CreatedAt returns when the room was created
func (s *GameSession) CreatedAt() time.Time {
	return s.room.CreatedAt
}

// PlayerCount returns the number of players in the room
func (s *GameSession) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Players)
}

// Status returns the room's lifecycle status
func (s *GameSession) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Status
}

// Phase returns the current turn phase
func (s *GameSession) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Phase
}

// DrawerID returns the current drawer's id, or "" outside a turn
func (s *GameSession) DrawerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.DrawerID
}

// View returns the public room snapshot
func (s *GameSession) View() *domain.RoomView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.PublicView()
}

// CanDraw reports whether the player's strokes should be relayed: only
// the current drawer draws, and only during the drawing phase.
func (s *GameSession) CanDraw(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Phase == domain.PhaseDrawing && s.room.DrawerID == playerID
}

// Join adds a player to the room. The first player to join becomes the
// host. Joining is allowed mid-game; the newcomer simply guesses until
// the rotation reaches them.
func (s *GameSession) Join(playerID, name, avatar string) (*domain.RoomView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := domain.NewPlayer(playerID, name, avatar)
	if err := s.room.AddPlayer(player); err != nil {
		return nil, err
	}

	s.broadcastLocked()
	return s.room.PublicView(), nil
}

// Leave removes a player and reports whether the room is now empty. An
// empty room closes itself; the hub drops it from the registry. If the
// departing player was drawing, the turn ends early so the game cannot
// stall waiting on a gone drawer.
func (s *GameSession) Leave(playerID string) (empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, wasDrawer, err := s.room.RemovePlayer(playerID)
	if err != nil {
		return false
	}

	if len(s.room.Players) == 0 {
		s.closeLocked()
		return true
	}

	if s.room.Status == domain.StatusPlaying {
		switch {
		case wasDrawer && s.room.Phase == domain.PhaseDrawing:
			s.endTurnLocked()
		case wasDrawer && s.room.Phase == domain.PhaseSelecting:
			// No word was committed yet, skip straight to the next turn
			s.startTurnLocked()
		case s.room.Phase == domain.PhaseDrawing && s.room.AllGuessed():
			// The leaver was the last player still guessing
			s.endTurnLocked()
		}
	}

	s.broadcastLocked()
	return false
}

// UpdateSettings applies a partial settings update. Host-only and
// lobby-only: once a game is running the parameters are frozen.
func (s *GameSession) UpdateSettings(playerID string, patch domain.SettingsPatch) (*domain.RoomView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Status != domain.StatusLobby {
		return nil, domain.ErrInvalidPhase
	}
	if p := s.room.Player(playerID); p == nil || !p.IsHost {
		return nil, domain.ErrNotHost
	}

	updated, err := s.room.Settings.Apply(patch)
	if err != nil {
		return nil, err
	}
	s.room.Settings = updated

	s.broadcastLocked()
	return s.room.PublicView(), nil
}

// StartGame begins the game from the lobby. A single player is enough;
// solo rooms are tolerated so the flow can be exercised end to end.
func (s *GameSession) StartGame(playerID string) (*domain.RoomView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Status != domain.StatusLobby {
		return nil, domain.ErrInvalidPhase
	}
	if p := s.room.Player(playerID); p == nil || !p.IsHost {
		return nil, domain.ErrNotHost
	}
	if len(s.room.Players) < 1 {
		return nil, domain.ErrNotEnoughPlayers
	}

	s.room.Status = domain.StatusPlaying
	s.room.Round = 1
	s.room.Drawn = make(map[string]bool)
	s.room.ResetTurn()
	s.room.Phase = domain.PhaseStarting

	s.emit(func(sink EventSink) { sink.GameStarted(s.room.Code) })
	s.broadcastLocked()
	s.startPhaseLocked(s.cfg.StartingSeconds, func() { s.startTurnLocked() })

	return s.room.PublicView(), nil
}

// SelectWord commits the drawer's word choice and begins the drawing
// phase. Only the current drawer may pick, only during selection, and
// only from the offered options.
func (s *GameSession) SelectWord(playerID, word string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Phase != domain.PhaseSelecting {
		return domain.ErrInvalidPhase
	}
	if playerID != s.room.DrawerID {
		return domain.ErrNotDrawer
	}
	if !slices.Contains(s.room.WordChoices, word) {
		return domain.ErrInvalidWord
	}

	s.beginDrawingLocked(word)
	return nil
}

// SubmitGuess evaluates a guess against the secret word. First-time
// correct guesses score for both guesser and drawer; repeats stay
// correct but never score twice. When every guesser has the word the
// turn ends without waiting for the timer.
func (s *GameSession) SubmitGuess(playerID, text string) (correct bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Phase != domain.PhaseDrawing {
		return false, domain.ErrInvalidPhase
	}
	player := s.room.Player(playerID)
	if player == nil {
		return false, domain.ErrPlayerNotFound
	}
	if playerID == s.room.DrawerID {
		return false, domain.ErrNotDrawer
	}

	if words.Matches(text, s.room.Word) {
		if !s.room.Guessed[playerID] {
			s.room.Guessed[playerID] = true
			player.Score += domain.GuesserPoints
			if drawer := s.room.Player(s.room.DrawerID); drawer != nil {
				drawer.Score += domain.DrawerPoints
			}
			s.broadcastLocked()
			if s.room.AllGuessed() {
				s.endTurnLocked()
			}
		}
		return true, nil
	}

	if words.IsClose(text, s.room.Word) {
		s.emit(func(sink EventSink) { sink.CloseGuess(s.room.Code, playerID) })
	}
	return false, nil
}

// ResetToLobby returns an ended game to the lobby, zeroing all scores.
// Host-only.
func (s *GameSession) ResetToLobby(playerID string) (*domain.RoomView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Status != domain.StatusEnded {
		return nil, domain.ErrInvalidPhase
	}
	if p := s.room.Player(playerID); p == nil || !p.IsHost {
		return nil, domain.ErrNotHost
	}

	s.seq++
	s.timer.Stop()
	s.room.ResetGame()

	s.emit(func(sink EventSink) { sink.GameReset(s.room.Code) })
	s.broadcastLocked()
	return s.room.PublicView(), nil
}

// Close shuts down the session, cancelling any timer
func (s *GameSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// startTurnLocked advances to the next turn: it rotates the round-cycle
// when everyone has drawn, ends the game past the final round, and
// otherwise picks a drawer at random among those still owed a turn and
// offers them their word choices.
func (s *GameSession) startTurnLocked() {
	if len(s.room.Players) == 0 {
		return
	}

	s.room.ResetTurn()

	if s.room.CycleComplete() {
		s.room.Drawn = make(map[string]bool)
		s.room.Round++
	}
	if s.room.Round > s.room.Settings.TotalRounds {
		s.endGameLocked()
		return
	}

	eligible := s.room.EligibleDrawers()
	drawer := eligible[rand.Intn(len(eligible))]
	s.room.DrawerID = drawer.ID
	s.room.Drawn[drawer.ID] = true
	s.room.WordChoices = words.Choose(s.cfg.WordChoices)
	s.room.Phase = domain.PhaseSelecting

	s.logger.Debug("turn started",
		"roomCode", s.room.Code,
		"round", s.room.Round,
		"drawerID", drawer.ID,
	)

	options := slices.Clone(s.room.WordChoices)
	s.emit(func(sink EventSink) { sink.WordOptions(s.room.Code, drawer.ID, options) })
	s.broadcastLocked()

	s.startPhaseLocked(s.cfg.SelectingSeconds, func() {
		// Drawer never picked; fall back to the first offered option
		if len(s.room.WordChoices) > 0 {
			s.beginDrawingLocked(s.room.WordChoices[0])
		}
	})
}

// beginDrawingLocked commits the secret word and opens the draw window
func (s *GameSession) beginDrawingLocked(word string) {
	s.room.Word = word
	s.room.Masked = words.Mask(word)
	s.room.WordChoices = nil
	s.room.Guessed = make(map[string]bool)
	s.room.TurnStartedAt = time.Now()
	s.room.Phase = domain.PhaseDrawing
	s.scheduleHintsLocked()

	drawerID := s.room.DrawerID
	s.emit(func(sink EventSink) { sink.TurnAssigned(s.room.Code, drawerID, word) })
	s.broadcastLocked()

	s.startPhaseLocked(s.room.Settings.DrawTimeSeconds, func() { s.endTurnLocked() })
}

// endTurnLocked moves the turn into review: the word becomes public and
// a fixed delay runs before the next turn advances.
func (s *GameSession) endTurnLocked() {
	s.room.Phase = domain.PhaseReview
	s.broadcastLocked()
	s.startPhaseLocked(s.cfg.ReviewSeconds, func() { s.startTurnLocked() })
}

// endGameLocked finishes the game after the last round
func (s *GameSession) endGameLocked() {
	s.seq++
	s.timer.Stop()
	s.room.Status = domain.StatusEnded
	s.room.Phase = domain.PhaseNone
	s.room.ResetTurn()

	s.logger.Info("game ended", "roomCode", s.room.Code)
	s.broadcastLocked()
}

// startPhaseLocked arms the room's single timer for the phase just
// entered, superseding whatever was running. The captured seq makes a
// superseded or stale callback a no-op.
func (s *GameSession) startPhaseLocked(seconds int, onExpire func()) {
	s.seq++
	seq := s.seq

	s.timer.Start(seconds,
		func(remaining int) { s.handleTick(seq, remaining) },
		func() { s.handleExpiry(seq, onExpire) },
	)
}

func (s *GameSession) handleTick(seq uint64, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.seq {
		return
	}

	s.emit(func(sink EventSink) { sink.TimerTick(s.room.Code, remaining) })

	if s.room.Phase == domain.PhaseDrawing && s.hintAt[remaining] {
		s.room.Masked = words.Reveal(s.room.Word, s.room.Masked)
		s.broadcastLocked()
	}
}

func (s *GameSession) handleExpiry(seq uint64, onExpire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.seq {
		return
	}
	onExpire()
}

// scheduleHintsLocked spreads the configured number of letter reveals
// evenly across the draw window.
func (s *GameSession) scheduleHintsLocked() {
	s.hintAt = make(map[int]bool)

	hints := s.room.Settings.HintCount
	drawTime := s.room.Settings.DrawTimeSeconds
	if hints <= 0 {
		return
	}
	interval := drawTime / (hints + 1)
	if interval == 0 {
		return
	}
	for i := 1; i <= hints; i++ {
		s.hintAt[drawTime-i*interval] = true
	}
}

// broadcastLocked queues the public room snapshot for delivery
func (s *GameSession) broadcastLocked() {
	view := s.room.PublicView()
	s.emit(func(sink EventSink) { sink.RoomUpdated(view.RoomCode, view) })
}

// emit queues a sink call for asynchronous delivery
func (s *GameSession) emit(fn func(EventSink)) {
	select {
	case s.events <- fn:
	default:
		s.logger.Warn("event queue full, notification dropped", "roomCode", s.room.Code)
	}
}

// eventLoop delivers queued sink calls outside the session lock
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.events:
			fn(s.sink)
		}
	}
}

func (s *GameSession) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	s.seq++
	s.timer.Stop()
	close(s.done)
}
