package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardPartialFailureDegradesIndependently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/filmes/em-cartaz":
			json.NewEncoder(w).Encode([]response.MovieResponse{
				{ID: "f1", Titulo: "A Noite das Estrelas", Status: response.MovieShowing},
			})
		case "/api/precos":
			// Prices endpoint is down.
			w.WriteHeader(http.StatusInternalServerError)
		case "/api/produtos":
			json.NewEncoder(w).Encode([]response.ProductResponse{
				{ID: "p1", Nome: "Pipoca Grande", Preco: 12.00, Estoque: 25},
			})
		}
	}))
	defer server.Close()

	service := NewCatalogService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())

	data := service.Dashboard(context.Background())
	require.NotNil(t, data)

	// The failed data set degrades to its zero value; the others render.
	assert.Len(t, data.Movies, 1)
	assert.Len(t, data.Products, 1)
	assert.Zero(t, data.Prices.IngressoInteiro)
	assert.Zero(t, data.Prices.IngressoMeia)
}

func TestDashboardAllDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewCatalogService(api.NewClient(server.URL, zap.NewNop()), zap.NewNop())

	data := service.Dashboard(context.Background())
	require.NotNil(t, data)
	assert.Empty(t, data.Movies)
	assert.Empty(t, data.Products)
}
