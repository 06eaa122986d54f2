package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/internal/app"
	"sketchparty/internal/config"
	"sketchparty/internal/domain"
	"sketchparty/internal/transport/ws"
)

type silentSink struct{}

func (silentSink) RoomUpdated(string, *domain.RoomView) {}
func (silentSink) TimerTick(string, int)                {}
func (silentSink) WordOptions(string, string, []string) {}
func (silentSink) TurnAssigned(string, string, string)  {}
func (silentSink) CloseGuess(string, string)            {}
func (silentSink) GameStarted(string)                   {}
func (silentSink) GameReset(string)                     {}

func newTestServer(t *testing.T) (*Server, *app.GameHub) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Game: config.GameConfig{
			StartingSeconds:  3,
			SelectingSeconds: 5,
			ReviewSeconds:    5,
			WordChoices:      3,
			RoomCodeLength:   6,
		},
	}

	hub := app.NewGameHub(cfg.Game, silentSink{}, logger)
	t.Cleanup(hub.Close)

	registry := ws.NewRegistry(logger)
	wsHandler := ws.NewHandler(hub, registry, logger)

	return NewServer(cfg, hub, wsHandler, logger), hub
}

func doRequest(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doRequest(t, s, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestStatsEndpoint(t *testing.T) {
	s, hub := newTestServer(t)

	_, _, err := hub.CreateRoom("host-1", "Ana", "", domain.SettingsPatch{})
	require.NoError(t, err)

	rec, body := doRequest(t, s, http.MethodGet, "/api/stats")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	stats, err := json.Marshal(body.Data)
	require.NoError(t, err)

	var parsed StatsResponse
	require.NoError(t, json.Unmarshal(stats, &parsed))
	assert.Equal(t, 1, parsed.ActiveRooms)
	assert.Equal(t, 1, parsed.TotalPlayers)
}

func TestGetRoomFound(t *testing.T) {
	s, hub := newTestServer(t)

	session, _, err := hub.CreateRoom("host-1", "Ana", "", domain.SettingsPatch{})
	require.NoError(t, err)
	code := session.RoomCode()

	rec, body := doRequest(t, s, http.MethodGet, "/api/rooms/"+code)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, body.Success)

	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)

	var parsed GetRoomResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, code, parsed.RoomCode)
	assert.Equal(t, 1, parsed.PlayerCount)
	assert.Equal(t, domain.StatusLobby, parsed.Status)
}

func TestGetRoomIsCaseInsensitive(t *testing.T) {
	s, hub := newTestServer(t)

	session, _, err := hub.CreateRoom("host-1", "Ana", "", domain.SettingsPatch{})
	require.NoError(t, err)

	rec, body := doRequest(t, s, http.MethodGet, "/api/rooms/"+strings.ToLower(session.RoomCode()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
}

func TestGetRoomNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doRequest(t, s, http.MethodGet, "/api/rooms/ZZZZZZ")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "ROOM_NOT_FOUND", body.Error.Code)
}

func TestCORSHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec, _ := doRequest(t, s, http.MethodGet, "/api/health")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
