package constants

// Centralized constants for headers, env keys and routes.
const (
	// Environment variable keys
	EnvConfigPath = "NEIGHBOR_WARS_CONFIG"
	EnvDBPath     = "NEIGHBOR_WARS_DB"
	EnvAddr       = "NEIGHBOR_WARS_ADDR"

	DefaultConfigPath = "neighbor-wars.yaml"
	DefaultDBPath     = "neighbor-wars.db"
	DefaultAddr       = ":8080"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteMatches       = "/matches"
	RouteMatchByID     = "/matches/:matchID"
	RouteMatchAttack   = "/matches/:matchID/attack"
	RouteMatchDuel     = "/matches/:matchID/duel"
	RouteMatchPower    = "/matches/:matchID/powers"
	RouteMatchResign   = "/matches/:matchID/resign"
	RouteMatchEvents   = "/matches/:matchID/events"
	RouteMatchMoves    = "/matches/:matchID/moves"
	RouteRooms         = "/rooms"
	RouteRoomsJoin     = "/rooms/join"
	RoutePlayerStats   = "/player-stats"
	RouteLeaderboard   = "/leaderboard"
	RouteWSRoom        = "/ws/rooms/:code"
	RouteWSRoomPattern = "/ws/rooms/"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrMatchNotFound     = "Match not found"
	ErrRoomNotFound      = "Room not found"
	ErrFailedCreateMatch = "Failed to create match"
	ErrFailedFetchMoves  = "Failed to fetch moves"
	ErrFailedFetchStats  = "Failed to fetch stats"
	ErrPlayerNotFound    = "Player not found"
	ErrFailedEncode      = "Failed to encode response"
	ErrStorageDisabled   = "Storage is not configured"
	ErrNameRequired      = "name is required"
	ErrFailedUpgradeWS   = "Failed to upgrade websocket"
	ErrInternal          = "Internal error"
)

// Logging field names
const (
	LogFieldMatchID  = "match_id"
	LogFieldRoomCode = "room_code"
	LogFieldSide     = "side"
	LogFieldRound    = "round"
	LogFieldPlayer   = "player"
	LogFieldOutcome  = "outcome"
	LogFieldAction   = "action"
	LogFieldSource   = "source"
	LogFieldAddr     = "addr"
	LogFieldCount    = "count"
)
