package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
)

// CreateRoom opens a networked room and returns its code.
func (h *MatchHandler) CreateRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, err := h.svc.CreateRoom(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// JoinRoom enters a room by code.
func (h *MatchHandler) JoinRoom(c *gin.Context) {
	var req service.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	st, err := h.svc.JoinRoom(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
