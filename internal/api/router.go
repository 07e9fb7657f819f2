package api

import (
	"github.com/gin-gonic/gin"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/remote"
)

// NewRouter wires every route. relay may be nil when this process does not
// serve rooms to peers.
func NewRouter(h *MatchHandler, relay *remote.Relay) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, h.GetPlayerStats)

		apiRoutes.POST(constants.RouteMatches, h.CreateMatch)
		apiRoutes.GET(constants.RouteMatchByID, h.GetMatch)
		apiRoutes.POST(constants.RouteMatchAttack, h.Attack)
		apiRoutes.POST(constants.RouteMatchDuel, h.DuelPick)
		apiRoutes.POST(constants.RouteMatchPower, h.ActivatePower)
		apiRoutes.POST(constants.RouteMatchResign, h.Resign)
		apiRoutes.GET(constants.RouteMatchEvents, h.ListEvents)
		apiRoutes.GET(constants.RouteMatchMoves, h.ListMoves)

		apiRoutes.POST(constants.RouteRooms, h.CreateRoom)
		apiRoutes.POST(constants.RouteRoomsJoin, h.JoinRoom)
	}
	if relay != nil {
		router.GET(constants.RouteWSRoom, relay.Handle)
	}
	return router
}
