package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, zap.NewNop())
}

func TestErrorMessageExtractedVerbatim(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"mensagem":"Assento B04 indisponível"}`))
	})

	_, err := client.Products(context.Background())
	require.Error(t, err)

	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Assento B04 indisponível", apiErr.Message())
	assert.False(t, apiErr.Generic)
}

func TestErrorFieldErroAlsoAccepted(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"erro":"Sessão encerrada"}`))
	})

	_, err := client.Prices(context.Background())
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Sessão encerrada", apiErr.Message())
}

func TestUnparsableErrorBodyFallsBackToGeneric(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.NowShowing(context.Background())
	apiErr := AsError(err)
	require.NotNil(t, apiErr)
	assert.True(t, apiErr.Generic)
	assert.Equal(t, GenericFailure, apiErr.Message())
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", zap.NewNop())

	_, err := client.NowShowing(context.Background())
	require.Error(t, err)
	assert.Nil(t, AsError(err))
	assert.Equal(t, GenericConnectivity, UserMessage(err))
}

func TestSuccessDecoding(t *testing.T) {
	client := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessoes/s1/assentos", r.URL.Path)
		w.Write([]byte(`{"capacidade":2,"assentos":{"A01":true,"A02":false}}`))
	})

	seatMap, err := client.SeatMap(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, seatMap.Capacidade)
	assert.True(t, seatMap.Assentos["A01"])
	assert.False(t, seatMap.Assentos["A02"])
}
