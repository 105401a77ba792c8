package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/data/store"
	"astra-cinemas/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTicketsService(t *testing.T, handler http.HandlerFunc) (TicketsService, store.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache := store.NewFileStore(filepath.Join(t.TempDir(), "tickets.json"))
	client := api.NewClient(server.URL, zap.NewNop())
	return NewTicketsService(client, cache, t.TempDir(), zap.NewNop()), cache
}

func TestRefreshBackendReplacesLocalDuplicate(t *testing.T) {
	ctx := context.Background()

	service, cache := newTicketsService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]response.TicketResponse{
			{ID: "5", Assento: "C09", Codigo: "NEW", SessaoID: "s1"},
		})
	})

	require.NoError(t, cache.Save(ctx, "cli-1", []store.CachedTicket{
		{ID: "5", Assento: "A01", Codigo: "OLD", SessaoID: "s1"},
	}))

	merged := service.Refresh(ctx, "cli-1")
	require.Len(t, merged, 1)
	assert.Equal(t, "C09", merged[0].Assento)
	assert.Equal(t, "NEW", merged[0].Codigo)

	// Merged view was written back.
	persisted, err := cache.Load(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, merged, persisted)
}

func TestRefreshDegradesToCacheWhenBackendDown(t *testing.T) {
	ctx := context.Background()

	service, cache := newTicketsService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	local := []store.CachedTicket{{ID: "1", Assento: "A01", Codigo: "C1"}}
	require.NoError(t, cache.Save(ctx, "cli-1", local))

	assert.Equal(t, local, service.Refresh(ctx, "cli-1"))
}

func TestRefreshWithoutAccountIsNoOp(t *testing.T) {
	called := false
	service, _ := newTicketsService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	assert.Nil(t, service.Refresh(context.Background(), ""))
	assert.False(t, called)
}
