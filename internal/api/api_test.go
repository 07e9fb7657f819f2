package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/remote"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	repo := storage.NewSQLiteRepository(db)
	hub := remote.NewHub()
	svc := service.NewManager(service.Options{Repo: repo, Channel: hub})
	t.Cleanup(svc.Shutdown)
	return NewRouter(NewMatchHandler(svc, repo), remote.NewRelay(hub))
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

type actionResponse struct {
	Result json.RawMessage `json:"result"`
	State  service.State   `json:"state"`
}

func TestVersion(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]string
	decode(t, w, &out)
	require.Equal(t, "dev", out["version"])
}

func TestCreateMatch_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/matches", map[string]interface{}{"name": "ana", "tier2": "garden_hose"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/matches", map[string]interface{}{"tier2": "fence_shield"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/matches/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSoloFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/matches", map[string]interface{}{"name": "Ana", "tier2": "spy_drone", "seed": 99})
	require.Equal(t, http.StatusCreated, w.Code)
	var st service.State
	decode(t, w, &st)
	require.True(t, st.Ready)
	base := "/api/matches/" + st.MatchID

	w = do(t, r, http.MethodPost, base+"/attack", map[string]interface{}{"row": 9, "col": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, base+"/attack", map[string]interface{}{"row": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// spy a 3x3 block to find an empty cell
	w = do(t, r, http.MethodPost, base+"/powers", map[string]interface{}{"power": "spy_drone", "row": 1, "col": 1})
	require.Equal(t, http.StatusOK, w.Code)
	var spied actionResponse
	decode(t, w, &spied)
	require.Len(t, spied.State.View.Enemy, 9)
	var empty *engine.EnemyCell
	for i := range spied.State.View.Enemy {
		if spied.State.View.Enemy[i].Unit == nil {
			empty = &spied.State.View.Enemy[i]
			break
		}
	}
	require.NotNil(t, empty)

	w = do(t, r, http.MethodPost, base+"/powers", map[string]interface{}{"power": "spy_drone", "row": 1, "col": 1})
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, base+"/attack", map[string]interface{}{"row": empty.Row, "col": empty.Col})
	require.Equal(t, http.StatusOK, w.Code)
	var attacked actionResponse
	decode(t, w, &attacked)
	var res engine.AttackResult
	require.NoError(t, json.Unmarshal(attacked.Result, &res))
	require.Equal(t, game.ResultMissed, res.Kind)

	// the computer played at once and now waits for our defense
	require.NotNil(t, attacked.State.View.Duel)
	require.True(t, attacked.State.View.Duel.AwaitingDefender)
	w = do(t, r, http.MethodPost, base+"/attack", map[string]interface{}{"row": 0, "col": 0})
	require.Equal(t, http.StatusConflict, w.Code)
	w = do(t, r, http.MethodPost, base+"/duel", map[string]interface{}{"picks": []int{5}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, base+"/duel", map[string]interface{}{"picks": []int{1}})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, base+"/events?since=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []engine.Event
	decode(t, w, &events)
	require.NotEmpty(t, events)
	w = do(t, r, http.MethodGet, base+"/events?since=x", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, base+"/moves", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var moves []map[string]interface{}
	decode(t, w, &moves)
	require.Len(t, moves, 2)
	require.Contains(t, moves[0], "created_at")
	require.Equal(t, string(game.ResultMissed), moves[0]["result"])

	w = do(t, r, http.MethodPost, base+"/resign", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resigned actionResponse
	decode(t, w, &resigned)
	require.Equal(t, game.OutcomeSideBWins, resigned.State.View.Outcome)

	w = do(t, r, http.MethodGet, "/api/player-stats?name=ana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	decode(t, w, &stats)
	require.Equal(t, "Ana", stats["name"])
	require.EqualValues(t, 1, stats["total_losses"])

	w = do(t, r, http.MethodGet, "/api/player-stats?name=nobody", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, r, http.MethodGet, "/api/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRooms(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/rooms", map[string]interface{}{"name": "ana", "tier2": "fertilizer"})
	require.Equal(t, http.StatusCreated, w.Code)
	var host service.State
	decode(t, w, &host)
	require.Len(t, host.RoomCode, 6)
	require.Equal(t, game.SideA, host.Side)

	w = do(t, r, http.MethodPost, "/api/rooms/join", map[string]interface{}{"code": "??", "name": "bo", "tier2": "fertilizer"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, "/api/rooms/join", map[string]interface{}{"code": "QQQQQQ", "name": "bo", "tier2": "fertilizer"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/rooms/join", map[string]interface{}{"code": host.RoomCode, "name": "bo", "tier2": "fertilizer"})
	require.Equal(t, http.StatusOK, w.Code)
	var guest service.State
	decode(t, w, &guest)
	require.Equal(t, game.SideB, guest.Side)
	require.Equal(t, host.RoomCode, guest.RoomCode)

	w = do(t, r, http.MethodPost, "/api/rooms/join", map[string]interface{}{"code": host.RoomCode, "name": "cy", "tier2": "fertilizer"})
	require.Equal(t, http.StatusConflict, w.Code)
}
