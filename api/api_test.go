package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakecoffman/baucua"
	"github.com/jakecoffman/baucua/game"
)

type fakeRooms struct {
	summaries []game.Summary
	err       error
}

func (f *fakeRooms) Rooms(ctx context.Context) ([]game.Summary, error) {
	return f.summaries, f.err
}

var origins = baucua.Origins{"http://localhost:5173"}

func newTestEngine(rooms RoomLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ws := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSwitchingProtocols)
	})
	return New(rooms, ws, origins, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func get(engine *gin.Engine, method, path, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, path, nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	engine.ServeHTTP(w, r)
	return w
}

func TestHealth(t *testing.T) {
	w := get(newTestEngine(&fakeRooms{}), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestSymbols(t *testing.T) {
	w := get(newTestEngine(&fakeRooms{}), http.MethodGet, "/symbols", "http://localhost:5173")
	require.Equal(t, http.StatusOK, w.Code)

	var symbols []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &symbols))
	assert.Equal(t, []string{"tiger", "gourd", "rooster", "shrimp", "crab", "fish"}, symbols)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestOriginBlocked(t *testing.T) {
	w := get(newTestEngine(&fakeRooms{}), http.MethodGet, "/symbols", "http://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "CORS blocked: http://evil.example"}`, w.Body.String())
}

func TestPreflight(t *testing.T) {
	w := get(newTestEngine(&fakeRooms{}), http.MethodOptions, "/symbols", "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestAdminRooms(t *testing.T) {
	rooms := &fakeRooms{summaries: []game.Summary{{RoomId: "t", HostId: "h", Players: 2, PendingBet: 15}}}
	w := get(newTestEngine(rooms), http.MethodGet, "/admin/rooms", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"roomId": "t", "hostId": "h", "players": 2, "pendingBets": 15}]`, w.Body.String())

	rooms.err = errors.New("hub stopped")
	w = get(newTestEngine(rooms), http.MethodGet, "/admin/rooms", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWebsocketMounted(t *testing.T) {
	w := get(newTestEngine(&fakeRooms{}), http.MethodGet, "/ws", "")
	assert.Equal(t, http.StatusSwitchingProtocols, w.Code)
}
