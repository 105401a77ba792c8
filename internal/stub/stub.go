// Package stub is an in-memory backend implementing the Astra wire
// contract, so the console runs offline and tests have a real HTTP
// collaborator. It mirrors the contract only; the production backend
// remains the system of record for everything.
package stub

import (
	"net/http"
	"sync"

	"astra-cinemas/internal/dto/response"
	"astra-cinemas/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Stub struct {
	log *zap.Logger

	mu        sync.Mutex
	movies    []response.MovieResponse
	showtimes map[string]*response.ShowtimeResponse
	seats     map[string]map[string]bool   // sessaoID -> seat -> available
	holds     map[string]map[string]string // sessaoID -> seat -> clienteID
	products  []response.ProductResponse
	prices    response.PriceListResponse
	orders    map[string]*response.OrderResponse
	tickets   map[string][]response.TicketResponse // clienteID -> active tickets
	validated map[string]bool                      // scan code -> already used
}

func New(log *zap.Logger) *Stub {
	s := &Stub{
		log:       log.With(zap.String("service", "stub")),
		showtimes: make(map[string]*response.ShowtimeResponse),
		seats:     make(map[string]map[string]bool),
		holds:     make(map[string]map[string]string),
		orders:    make(map[string]*response.OrderResponse),
		tickets:   make(map[string][]response.TicketResponse),
		validated: make(map[string]bool),
	}
	s.seed()
	return s
}

// Router wires every endpoint of the wire contract.
func (s *Stub) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(s.log))
	r.Use(middleware.Recover(s.log))

	r.Get("/api/filmes/em-cartaz", s.handleNowShowing)
	r.Get("/api/sessoes/filme/{id}", s.handleShowtimes)
	r.Get("/api/sessoes/{id}/assentos", s.handleSeatMap)
	r.Post("/api/sessoes/{id}/assentos/reservar", s.handleReserve)
	r.Get("/api/produtos", s.handleProducts)
	r.Get("/api/precos", s.handlePrices)
	r.Post("/api/compras", s.handleCreateOrder)
	r.Delete("/api/compras/{id}", s.handleCancelOrder)
	r.Get("/api/ingressos/ativos", s.handleActiveTickets)
	r.Post("/api/ingressos/validar", s.handleValidateTicket)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
