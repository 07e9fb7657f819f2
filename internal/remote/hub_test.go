package remote

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

type collector struct {
	mu  sync.Mutex
	got []engine.Action
}

func (c *collector) add(a engine.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, a)
}

func (c *collector) snapshot() []engine.Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]engine.Action(nil), c.got...)
}

func (c *collector) waitFor(t *testing.T, n int) []engine.Action {
	t.Helper()
	require.Eventually(t, func() bool { return len(c.snapshot()) >= n }, 2*time.Second, 5*time.Millisecond)
	return c.snapshot()
}

func TestHub_ReplayThenLive(t *testing.T) {
	ctx := context.Background()
	h := NewHub()
	require.NoError(t, h.Open(ctx, "ROOM01"))
	require.NoError(t, h.Publish(ctx, "ROOM01", engine.Action{Kind: engine.ActionSetup, Side: game.SideA, Seed: 9}))

	var c collector
	cancel, err := h.Subscribe("ROOM01", c.add)
	require.NoError(t, err)
	defer cancel()
	require.NoError(t, h.Publish(ctx, "ROOM01", engine.Action{Kind: engine.ActionSetup, Side: game.SideB}))

	got := c.waitFor(t, 2)
	require.Equal(t, int64(1), got[0].Seq)
	require.Equal(t, uint64(9), got[0].Seed)
	require.Equal(t, int64(2), got[1].Seq)
	require.Equal(t, game.SideB, got[1].Side)
	require.NotZero(t, got[1].Timestamp)
}

func TestHub_UnknownRoom(t *testing.T) {
	h := NewHub()
	_, err := h.Subscribe("NOPE00", func(engine.Action) {})
	require.ErrorIs(t, err, ErrRoomNotFound)
	err = h.Publish(context.Background(), "NOPE00", engine.Action{})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestHub_SubscriberMayPublish(t *testing.T) {
	ctx := context.Background()
	h := NewHub()
	require.NoError(t, h.Open(ctx, "ROOM02"))

	cancel, err := h.Subscribe("ROOM02", func(a engine.Action) {
		if a.Kind == engine.ActionAttack {
			_ = h.Publish(ctx, "ROOM02", engine.Action{Kind: engine.ActionDuelPick, Side: game.SideB, Picks: []int{3}})
		}
	})
	require.NoError(t, err)
	defer cancel()

	var c collector
	cancel2, err := h.Subscribe("ROOM02", c.add)
	require.NoError(t, err)
	defer cancel2()

	require.NoError(t, h.Publish(ctx, "ROOM02", engine.Action{Kind: engine.ActionAttack, Side: game.SideA}))
	got := c.waitFor(t, 2)
	require.Equal(t, engine.ActionDuelPick, got[1].Kind)
}

func TestHub_CancelAndDrop(t *testing.T) {
	ctx := context.Background()
	h := NewHub()
	require.NoError(t, h.Open(ctx, "ROOM03"))
	var c collector
	cancel, err := h.Subscribe("ROOM03", c.add)
	require.NoError(t, err)
	cancel()
	cancel()
	require.NoError(t, h.Publish(ctx, "ROOM03", engine.Action{Kind: engine.ActionResign}))
	time.Sleep(20 * time.Millisecond)
	require.Empty(t, c.snapshot())

	require.Equal(t, 1, h.Rooms())
	h.Drop("ROOM03")
	require.False(t, h.Exists("ROOM03"))
	require.Equal(t, 0, h.Rooms())
}
