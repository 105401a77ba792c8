package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// backendFixture is a scriptable backend for one showtime. It counts
// calls per endpoint so tests can assert that client-side validation
// failures never reach the network.
type backendFixture struct {
	mu    sync.Mutex
	calls map[string]int

	seats          map[string]bool
	seatsAfter     map[string]bool // served after a failed reservation, when set
	seatsDownAfter bool            // availability goes 500 after a failed reservation
	seatsStatus    int
	prices         response.PriceListResponse
	products       []response.ProductResponse
	reserveStatus  int
	reserveBody    string
	orderStatus    int
	orderBody      string
}

func newFixture() *backendFixture {
	return &backendFixture{
		calls: make(map[string]int),
		seats: map[string]bool{"A01": true, "A02": false, "A03": true},
		prices: response.PriceListResponse{
			IngressoInteiro: 35.00,
			IngressoMeia:    17.50,
		},
		products: []response.ProductResponse{
			{ID: "p1", Nome: "Refrigerante 500ml", Preco: 8.50, Estoque: 40},
			{ID: "p2", Nome: "Pipoca Pequena", Preco: 6.00, Estoque: 2},
		},
	}
}

func (f *backendFixture) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *backendFixture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/assentos/reservar"):
		f.calls["reservar"]++
		if f.reserveStatus != 0 {
			w.WriteHeader(f.reserveStatus)
			w.Write([]byte(f.reserveBody))
			if f.seatsAfter != nil {
				f.seats = f.seatsAfter
			}
			if f.seatsDownAfter {
				f.seatsStatus = http.StatusInternalServerError
			}
			return
		}
		w.Write([]byte(`{"mensagem":"Assentos reservados"}`))

	case strings.HasSuffix(r.URL.Path, "/assentos"):
		f.calls["assentos"]++
		if f.seatsStatus != 0 {
			w.WriteHeader(f.seatsStatus)
			w.Write([]byte(`{"erro":"Falha ao carregar assentos"}`))
			return
		}
		json.NewEncoder(w).Encode(response.SeatMapResponse{
			Capacidade: len(f.seats),
			Assentos:   f.seats,
		})

	case r.URL.Path == "/api/precos":
		f.calls["precos"]++
		json.NewEncoder(w).Encode(f.prices)

	case r.URL.Path == "/api/produtos":
		f.calls["produtos"]++
		json.NewEncoder(w).Encode(f.products)

	case r.URL.Path == "/api/compras":
		f.calls["compras"]++
		if f.orderStatus != 0 {
			w.WriteHeader(f.orderStatus)
			w.Write([]byte(f.orderBody))
			return
		}
		json.NewEncoder(w).Encode(response.OrderResponse{
			ID:             "c1",
			ClienteID:      "cli-1",
			SessaoID:       "s1",
			Total:          87.00,
			FormaPagamento: "pix",
			Ingressos: []response.TicketResponse{
				{ID: "t1", Assento: "A01", Codigo: "COD-A01", Tipo: "INTEIRA", SessaoID: "s1"},
				{ID: "t2", Assento: "A03", Codigo: "COD-A03", Tipo: "INTEIRA", SessaoID: "s1"},
			},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"mensagem":"rota desconhecida"}`))
	}
}

func newPurchase(t *testing.T, f *backendFixture) *Purchase {
	t.Helper()

	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, zap.NewNop())
	p := NewPurchase(client, "cli-1", "s1", t.TempDir(), zap.NewNop())
	require.NoError(t, p.Start(context.Background()))
	return p
}

// advance walks the workflow up to the payment stage with one seat
// selected.
func advanceToPayment(t *testing.T, p *Purchase) {
	t.Helper()
	ctx := context.Background()

	require.True(t, p.ToggleSeat("A01"))
	require.NoError(t, p.Next(ctx)) // -> ticket type
	require.NoError(t, p.Next(ctx)) // -> concessions
	require.NoError(t, p.Next(ctx)) // -> payment
	require.Equal(t, StagePayment, p.Stage())
}

func TestToggleUnavailableSeatIsNoOp(t *testing.T) {
	p := newPurchase(t, newFixture())

	assert.False(t, p.ToggleSeat("A02"))
	assert.Equal(t, 0, p.Cart().SeatCount())

	assert.True(t, p.ToggleSeat("A01"))
	assert.Equal(t, []string{"A01"}, p.Cart().Seats())
}

func TestToggleDeselectAlwaysAllowed(t *testing.T) {
	p := newPurchase(t, newFixture())

	require.True(t, p.ToggleSeat("A01"))
	assert.True(t, p.ToggleSeat("A01"))
	assert.Equal(t, 0, p.Cart().SeatCount())
}

func TestSeatSelectionRequiresOneSeat(t *testing.T) {
	f := newFixture()
	p := newPurchase(t, f)

	err := p.Next(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StageSeatSelection, p.Stage())

	// Client-side rejection: nothing reached the order endpoints.
	assert.Equal(t, 0, f.count("reservar"))
	assert.Equal(t, 0, f.count("compras"))
}

func TestTotalsIndependentOfStageVisitOrder(t *testing.T) {
	ctx := context.Background()
	p := newPurchase(t, newFixture())

	require.True(t, p.ToggleSeat("A01"))
	require.True(t, p.ToggleSeat("A03"))
	require.NoError(t, p.Next(ctx)) // ticket type
	require.NoError(t, p.Next(ctx)) // concessions
	require.NoError(t, p.AddItem("p1"))
	require.NoError(t, p.AddItem("p1"))

	want := Totals{TicketSubtotal: 70.00, ConcessionsSubtotal: 17.00, GrandTotal: 87.00}
	assert.Equal(t, want, p.Totals())

	// Walk back and forward again; the recomputed totals must match.
	require.False(t, p.Back()) // -> ticket type
	assert.Equal(t, want, p.Totals())
	require.False(t, p.Back()) // -> seat selection
	assert.Equal(t, want, p.Totals())

	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.SetTicketType(TicketHalf))
	assert.Equal(t, Totals{TicketSubtotal: 35.00, ConcessionsSubtotal: 17.00, GrandTotal: 52.00}, p.Totals())

	require.NoError(t, p.SetTicketType(TicketFull))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx))
	assert.Equal(t, want, p.Totals())
}

func TestSubmitWithoutPaymentMethodRejectedOffline(t *testing.T) {
	f := newFixture()
	p := newPurchase(t, f)
	advanceToPayment(t, p)

	_, err := p.Submit(context.Background())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, 0, f.count("reservar"))
	assert.Equal(t, 0, f.count("compras"))
	assert.Equal(t, StagePayment, p.Stage())
}

func TestConcessionQuantityClampedToStock(t *testing.T) {
	ctx := context.Background()
	p := newPurchase(t, newFixture())

	require.True(t, p.ToggleSeat("A01"))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx)) // loads products

	// p2 has stock 2: a third add must not exceed it.
	for i := 0; i < 5; i++ {
		require.NoError(t, p.AddItem("p2"))
	}
	assert.Equal(t, 2, p.Cart().Quantity("p2"))

	// Decrements floor at zero.
	for i := 0; i < 5; i++ {
		require.NoError(t, p.RemoveItem("p2"))
	}
	assert.Equal(t, 0, p.Cart().Quantity("p2"))

	// Zero-quantity lines are omitted from the submission payload.
	assert.Empty(t, p.Cart().Items())
}

func TestProductCatalogFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	broken := NewPurchase(api.NewClient(server.URL, zap.NewNop()), "cli-1", "s1", t.TempDir(), zap.NewNop())
	broken.stage = StageTicketType
	broken.cart.addSeat("A01")

	// Concessions stage is reachable even when the catalog call fails.
	require.NoError(t, broken.Next(ctx))
	assert.Equal(t, StageConcessions, broken.Stage())
	assert.Empty(t, broken.Products())
}

func TestEndToEndPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := newPurchase(t, f)

	require.True(t, p.ToggleSeat("A01"))
	require.False(t, p.ToggleSeat("A02")) // unavailable
	require.True(t, p.ToggleSeat("A03"))

	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.SetTicketType(TicketFull))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.AddItem("p1"))
	require.NoError(t, p.AddItem("p1"))
	require.NoError(t, p.Next(ctx))

	assert.Equal(t, Totals{TicketSubtotal: 70.00, ConcessionsSubtotal: 17.00, GrandTotal: 87.00}, p.Totals())

	require.NoError(t, p.SetPaymentMethod(PaymentPix))
	confirmation, err := p.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, StageConfirmation, p.Stage())
	assert.Equal(t, 1, f.count("reservar"))
	assert.Equal(t, 1, f.count("compras"))
	require.Len(t, confirmation.Order.Ingressos, 2)
	assert.Equal(t, 87.00, confirmation.Order.Total)

	// One rendered scan code per ticket.
	assert.Len(t, confirmation.QRPaths, 2)

	p.Teardown()
	assert.Equal(t, 0, p.Cart().SeatCount())
	assert.Nil(t, p.Confirmation())
}

func TestReservationConflictRefreshesAndBlocksOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.reserveStatus = http.StatusConflict
	f.reserveBody = `{"mensagem":"Assento A01 indisponível"}`
	f.seatsAfter = map[string]bool{"A01": false, "A02": false, "A03": true}

	p := newPurchase(t, f)
	require.True(t, p.ToggleSeat("A01"))
	require.True(t, p.ToggleSeat("A03"))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.SetPaymentMethod(PaymentDebit))

	_, err := p.Submit(ctx)
	require.Error(t, err)

	// Backend's message surfaced verbatim.
	apiErr := api.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Assento A01 indisponível", apiErr.Message())

	// No order creation, availability re-fetched, user back at seat
	// selection with the lost seat pruned.
	assert.Equal(t, 0, f.count("compras"))
	assert.Equal(t, 2, f.count("assentos"))
	assert.Equal(t, StageSeatSelection, p.Stage())
	assert.Equal(t, []string{"A03"}, p.Cart().Seats())
}

func TestRefreshFailureAfterReservationKeepsSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	// Z09 only exists in this showtime's live chart, never in the
	// placeholder, so a prune against the placeholder would drop it.
	f.seats = map[string]bool{"Z09": true, "Z10": true}
	f.reserveStatus = http.StatusInternalServerError
	f.reserveBody = `{"erro":"Falha temporária"}`
	f.seatsDownAfter = true

	p := newPurchase(t, f)
	require.True(t, p.ToggleSeat("Z09"))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.Next(ctx))
	require.NoError(t, p.SetPaymentMethod(PaymentPix))

	_, err := p.Submit(ctx)
	require.Error(t, err)

	// The re-fetch degraded to the placeholder chart. Display-only data
	// must not decide which seats survive: the selection stays intact
	// and the next reserve attempt re-validates server-side.
	require.True(t, p.SeatMap().Fallback)
	assert.Equal(t, StageSeatSelection, p.Stage())
	assert.Equal(t, []string{"Z09"}, p.Cart().Seats())
	assert.Equal(t, 0, f.count("compras"))
}

func TestOrderCreationFailureKeepsWorkflowInteractive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.orderStatus = http.StatusInternalServerError
	f.orderBody = `{"erro":"Falha ao registrar a compra"}`

	p := newPurchase(t, f)
	advanceToPayment(t, p)
	require.NoError(t, p.SetPaymentMethod(PaymentCredit))

	_, err := p.Submit(ctx)
	require.Error(t, err)

	apiErr := api.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, "Falha ao registrar a compra", apiErr.Message())

	// Not silently successful: no confirmation, still interactive.
	assert.Nil(t, p.Confirmation())
	assert.Equal(t, StagePayment, p.Stage())
	assert.Equal(t, 1, f.count("reservar"))
}

func TestSeatFetchFailureFallsBackToPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewPurchase(api.NewClient(server.URL, zap.NewNop()), "cli-1", "s9", t.TempDir(), zap.NewNop())
	require.NoError(t, p.Start(context.Background()))

	require.NotNil(t, p.SeatMap())
	assert.True(t, p.SeatMap().Fallback)
	assert.Greater(t, p.SeatMap().Size(), 0)
}

func TestBackFromSeatSelectionExitsWorkflow(t *testing.T) {
	p := newPurchase(t, newFixture())

	require.True(t, p.ToggleSeat("A01"))
	exited := p.Back()
	assert.True(t, exited)
	assert.Equal(t, 0, p.Cart().SeatCount())
}

func TestBackPreservesSelections(t *testing.T) {
	ctx := context.Background()
	p := newPurchase(t, newFixture())

	require.True(t, p.ToggleSeat("A01"))
	require.NoError(t, p.Next(ctx))
	require.False(t, p.Back())
	assert.Equal(t, StageSeatSelection, p.Stage())
	assert.Equal(t, []string{"A01"}, p.Cart().Seats())
}
