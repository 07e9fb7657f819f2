package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
)

type AttackRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type DuelRequest struct {
	Picks []int `json:"picks" binding:"required,min=1,max=2"`
}

type PowerRequest struct {
	Power     game.PowerKind `json:"power" binding:"required"`
	Row       int            `json:"row"`
	Col       int            `json:"col"`
	Direction game.Direction `json:"direction"`
}

// respond sends the handler result together with the refreshed state.
func (h *MatchHandler) respond(c *gin.Context, id string, result interface{}) {
	st, err := h.svc.State(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "state": st})
}

// CreateMatch starts a solo match against the computer.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req service.SoloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, err := h.svc.StartSolo(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// GetMatch returns the match as the caller's side sees it.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	st, err := h.svc.State(c.Param("matchID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *MatchHandler) Attack(c *gin.Context) {
	var req AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := c.Param("matchID")
	res, err := h.svc.Attack(id, *req.Row, *req.Col)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, id, res)
}

func (h *MatchHandler) DuelPick(c *gin.Context) {
	var req DuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := c.Param("matchID")
	res, err := h.svc.DuelPick(id, req.Picks)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, id, res)
}

func (h *MatchHandler) ActivatePower(c *gin.Context) {
	var req PowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	id := c.Param("matchID")
	res, err := h.svc.ActivatePower(id, req.Power, engine.PowerParams{Row: req.Row, Col: req.Col, Direction: req.Direction})
	if err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, id, res)
}

func (h *MatchHandler) Resign(c *gin.Context) {
	id := c.Param("matchID")
	if err := h.svc.Resign(id); err != nil {
		writeError(c, err)
		return
	}
	h.respond(c, id, nil)
}

// ListEvents returns recorded events after ?since=N for the client to
// animate.
func (h *MatchHandler) ListEvents(c *gin.Context) {
	since := 0
	if s := c.Query("since"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		since = n
	}
	events, err := h.svc.Events(c.Param("matchID"), since)
	if err != nil {
		writeError(c, err)
		return
	}
	if events == nil {
		events = []engine.Event{}
	}
	c.JSON(http.StatusOK, events)
}

// ListMoves returns the persisted move log.
func (h *MatchHandler) ListMoves(c *gin.Context) {
	moves, err := h.svc.Moves(c.Param("matchID"))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMoves})
			return
		}
		writeError(c, err)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(moves)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncode})
		return
	}
	c.JSON(http.StatusOK, out)
}
