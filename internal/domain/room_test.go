package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(playerCount int) *Room {
	room := NewRoom("ABC234", DefaultSettings())
	for i := 0; i < playerCount; i++ {
		id := fmt.Sprintf("player-%d", i)
		if err := room.AddPlayer(NewPlayer(id, fmt.Sprintf("Player %d", i), "avatar")); err != nil {
			panic(err)
		}
	}
	return room
}

func TestAddPlayerFirstBecomesHost(t *testing.T) {
	room := newTestRoom(3)

	require.Len(t, room.Players, 3)
	assert.True(t, room.Players[0].IsHost)
	assert.False(t, room.Players[1].IsHost)
	assert.False(t, room.Players[2].IsHost)
}

func TestAddPlayerPreservesJoinOrder(t *testing.T) {
	room := newTestRoom(4)

	for i, p := range room.Players {
		assert.Equal(t, fmt.Sprintf("player-%d", i), p.ID)
	}
}

func TestAddPlayerRejectsWhenFull(t *testing.T) {
	room := NewRoom("ABC234", Settings{MaxPlayers: 2, TotalRounds: 3, DrawTimeSeconds: 60})
	require.NoError(t, room.AddPlayer(NewPlayer("a", "A", "")))
	require.NoError(t, room.AddPlayer(NewPlayer("b", "B", "")))

	err := room.AddPlayer(NewPlayer("c", "C", ""))
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, room.Players, 2)
}

func TestRemovePlayerReassignsHost(t *testing.T) {
	room := newTestRoom(3)

	wasHost, _, err := room.RemovePlayer("player-0")
	require.NoError(t, err)
	assert.True(t, wasHost)
	require.Len(t, room.Players, 2)

	hosts := 0
	for _, p := range room.Players {
		if p.IsHost {
			hosts++
		}
	}
	assert.Equal(t, 1, hosts, "exactly one host after the host leaves")
}

func TestRemovePlayerClearsDrawer(t *testing.T) {
	room := newTestRoom(2)
	room.DrawerID = "player-1"
	room.Drawn["player-1"] = true

	_, wasDrawer, err := room.RemovePlayer("player-1")
	require.NoError(t, err)
	assert.True(t, wasDrawer)
	assert.Empty(t, room.DrawerID)
	assert.False(t, room.Drawn["player-1"])
}

func TestRemoveUnknownPlayer(t *testing.T) {
	room := newTestRoom(1)

	_, _, err := room.RemovePlayer("ghost")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Len(t, room.Players, 1)
}

func TestEligibleDrawersAndCycle(t *testing.T) {
	room := newTestRoom(3)
	assert.False(t, room.CycleComplete())
	assert.Len(t, room.EligibleDrawers(), 3)

	room.Drawn["player-0"] = true
	room.Drawn["player-2"] = true
	eligible := room.EligibleDrawers()
	require.Len(t, eligible, 1)
	assert.Equal(t, "player-1", eligible[0].ID)

	room.Drawn["player-1"] = true
	assert.True(t, room.CycleComplete())
}

func TestAllGuessedExcludesDrawer(t *testing.T) {
	room := newTestRoom(3)
	room.DrawerID = "player-0"

	assert.False(t, room.AllGuessed())

	room.Guessed["player-1"] = true
	assert.False(t, room.AllGuessed())

	room.Guessed["player-2"] = true
	assert.True(t, room.AllGuessed())
}

func TestAllGuessedNoGuessers(t *testing.T) {
	room := newTestRoom(1)
	room.DrawerID = "player-0"

	assert.False(t, room.AllGuessed(), "a room with no eligible guessers never completes by guessing")
}

func TestPublicViewHidesSecretWord(t *testing.T) {
	room := newTestRoom(2)
	room.Status = StatusPlaying
	room.DrawerID = "player-0"
	room.Word = "octopus"
	room.Masked = "_______"
	room.WordChoices = []string{"octopus", "penguin", "anchor"}

	room.Phase = PhaseSelecting
	assert.Empty(t, room.PublicView().Word)

	room.Phase = PhaseDrawing
	assert.Equal(t, "_______", room.PublicView().Word)

	room.Phase = PhaseReview
	assert.Equal(t, "octopus", room.PublicView().Word)
}

func TestResetGameZeroesScores(t *testing.T) {
	room := newTestRoom(2)
	room.Status = StatusEnded
	room.Round = 3
	room.Players[0].Score = 150
	room.Players[1].Score = 60
	room.Drawn["player-0"] = true
	room.Guessed["player-1"] = true
	room.Word = "anchor"

	room.ResetGame()

	assert.Equal(t, StatusLobby, room.Status)
	assert.Equal(t, PhaseNone, room.Phase)
	assert.Equal(t, 0, room.Round)
	assert.Empty(t, room.Word)
	assert.Empty(t, room.Drawn)
	assert.Empty(t, room.Guessed)
	for _, p := range room.Players {
		assert.Equal(t, 0, p.Score)
	}
}
