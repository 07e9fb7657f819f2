package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
)

// ListLeaderboard returns the top players by wins (desc), limited to top 10 by default.
func (h *MatchHandler) ListLeaderboard(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrStorageDisabled})
		return
	}
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	players, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(players)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncode})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPlayerStats returns the aggregate record of ?name=.
func (h *MatchHandler) GetPlayerStats(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{constants.JSONKeyError: constants.ErrStorageDisabled})
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameRequired})
		return
	}
	p, err := h.repo.GetPlayerByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	winRate := 0.0
	if p.TotalGames > 0 {
		winRate = float64(p.TotalWins) * 100 / float64(p.TotalGames)
	}
	c.JSON(http.StatusOK, gin.H{
		"name":         p.Name,
		"total_games":  p.TotalGames,
		"total_wins":   p.TotalWins,
		"total_losses": p.TotalLosses,
		"win_rate":     winRate,
	})
}
