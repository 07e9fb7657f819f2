package remote

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/keys"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
)

// QueryCreate asks the relay to open the room on connect.
const QueryCreate = "create"

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Relay exposes a Hub's rooms over websockets. A peer receives the room log
// on connect and every action published after it. Frames a peer sends are
// appended to the log.
type Relay struct {
	hub *Hub
}

func NewRelay(hub *Hub) *Relay { return &Relay{hub: hub} }

// Handle serves constants.RouteWSRoom.
func (rl *Relay) Handle(c *gin.Context) {
	code, ok := keys.NormalizeRoomCode(c.Param("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if c.Query(QueryCreate) != "" {
		_ = rl.hub.Open(c.Request.Context(), code)
	}
	if !rl.hub.Exists(code) {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn(constants.ErrFailedUpgradeWS, logging.Fields{constants.LogFieldRoomCode: code, "error": err.Error()})
		return
	}
	defer conn.Close()
	logging.Info("peer connected", logging.Fields{constants.LogFieldRoomCode: code, constants.LogFieldAddr: c.Request.RemoteAddr})

	var wmu sync.Mutex
	cancel, err := rl.hub.Subscribe(code, func(a engine.Action) {
		wmu.Lock()
		defer wmu.Unlock()
		if err := conn.WriteJSON(a); err != nil {
			_ = conn.Close()
		}
	})
	if err != nil {
		return
	}
	defer cancel()

	for {
		var a engine.Action
		if err := conn.ReadJSON(&a); err != nil {
			break
		}
		a.Seq = 0
		if err := rl.hub.Publish(c.Request.Context(), code, a); err != nil {
			logging.Warn("dropping peer action", logging.Fields{constants.LogFieldRoomCode: code, "error": err.Error()})
			break
		}
	}
	logging.Info("peer disconnected", logging.Fields{constants.LogFieldRoomCode: code, constants.LogFieldAddr: c.Request.RemoteAddr})
}
