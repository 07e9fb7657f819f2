package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/engine"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/game"
)

func newRelayServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET(constants.RouteWSRoom, NewRelay(hub).Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRelay_UnknownRoom(t *testing.T) {
	_, base := newRelayServer(t)
	ch := NewWSChannel(base)
	defer ch.Close()
	_, err := ch.Subscribe("ABC123", func(engine.Action) {})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRelay_HostAndGuestShareLog(t *testing.T) {
	ctx := context.Background()
	hub, base := newRelayServer(t)

	host := NewWSChannel(base)
	defer host.Close()
	require.NoError(t, host.Open(ctx, "ab12cd"))
	require.True(t, hub.Exists("AB12CD"))

	var hostSeen collector
	cancel, err := host.Subscribe("AB12CD", hostSeen.add)
	require.NoError(t, err)
	defer cancel()
	require.NoError(t, host.Publish(ctx, "AB12CD", engine.Action{Kind: engine.ActionSetup, Side: game.SideA, Seed: 42, Name: "ana"}))

	guest := NewWSChannel(base)
	defer guest.Close()
	var guestSeen collector
	cancel2, err := guest.Subscribe("AB12CD", guestSeen.add)
	require.NoError(t, err)
	defer cancel2()
	require.NoError(t, guest.Publish(ctx, "AB12CD", engine.Action{Kind: engine.ActionSetup, Side: game.SideB, Name: "bo"}))

	var local collector
	cancel3, err := hub.Subscribe("AB12CD", local.add)
	require.NoError(t, err)
	defer cancel3()

	for _, c := range []*collector{&hostSeen, &guestSeen, &local} {
		got := c.waitFor(t, 2)
		require.Equal(t, int64(1), got[0].Seq)
		require.Equal(t, uint64(42), got[0].Seed)
		require.Equal(t, int64(2), got[1].Seq)
		require.Equal(t, "bo", got[1].Name)
	}
}
