package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
)

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys (created_at, updated_at, deleted_at)
// so clients consistently receive snake_case timestamps.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		// the primary key of embedded gorm.Model
		if val, ok := vv["ID"]; ok {
			vv["id"] = val
			delete(vv, "ID")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes gorm.Model keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMatchNotFound), errors.Is(err, service.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidRoomCode),
		errors.Is(err, engine.ErrInvalidMove),
		errors.Is(err, engine.ErrInvalidPick),
		errors.Is(err, engine.ErrDuplicateDuelPick),
		errors.Is(err, engine.ErrInvalidPlacement),
		errors.Is(err, engine.ErrUnknownPower),
		errors.Is(err, engine.ErrNoTarget),
		errors.Is(err, engine.ErrAlreadyFullHealth):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMatchNotReady),
		errors.Is(err, service.ErrRoomFull),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrAlreadyAttacked),
		errors.Is(err, engine.ErrPowerOnCooldown),
		errors.Is(err, engine.ErrPowerAlreadyActive),
		errors.Is(err, engine.ErrMatchOver),
		errors.Is(err, engine.ErrDuelPending),
		errors.Is(err, engine.ErrNoDuelPending),
		errors.Is(err, engine.ErrPickSubmitted):
		return http.StatusConflict
	case errors.Is(err, service.ErrRoomsDisabled), errors.Is(err, service.ErrPersistence):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError answers with the mapped status. Unexpected errors are logged
// and hidden behind a generic message.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error("request failed", err, logging.Fields{"path": c.FullPath()})
		c.JSON(status, gin.H{constants.JSONKeyError: constants.ErrInternal})
		return
	}
	c.JSON(status, gin.H{constants.JSONKeyError: err.Error()})
}
