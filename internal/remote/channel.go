// Package remote carries the action log of a networked match between the
// two copies of its engine.
package remote

import (
	"context"
	"errors"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrClosed       = errors.New("channel closed")
)

// Channel is a per-room ordered action log. Subscribers first receive the
// actions already in the log, then every published action in log order,
// including their own.
type Channel interface {
	// Open creates the room's log. Opening an existing room is a no-op.
	Open(ctx context.Context, room string) error
	Publish(ctx context.Context, room string, a engine.Action) error
	// Subscribe registers fn for room. fn runs on a delivery goroutine and
	// may call Publish.
	Subscribe(room string, fn func(engine.Action)) (cancel func(), err error)
}
