package stub

import (
	"net/http"

	"astra-cinemas/internal/dto/response"
	"astra-cinemas/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// handleNowShowing handles GET /api/filmes/em-cartaz
func (s *Stub) handleNowShowing(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	showing := make([]response.MovieResponse, 0, len(s.movies))
	for _, m := range s.movies {
		if m.Status == response.MovieShowing {
			showing = append(showing, m)
		}
	}

	utils.ResponseOK(w, showing)
}

// handleShowtimes handles GET /api/sessoes/filme/{id}
func (s *Stub) handleShowtimes(w http.ResponseWriter, r *http.Request) {
	filmeID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]response.ShowtimeResponse, 0)
	for _, st := range s.showtimes {
		if st.FilmeID == filmeID {
			sessions = append(sessions, *st)
		}
	}

	utils.ResponseOK(w, sessions)
}

// handleSeatMap handles GET /api/sessoes/{id}/assentos
func (s *Stub) handleSeatMap(w http.ResponseWriter, r *http.Request) {
	sessaoID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	seats, ok := s.seats[sessaoID]
	if !ok {
		utils.ResponseNotFound(w, "Sessão não encontrada")
		return
	}

	assentos := make(map[string]bool, len(seats))
	for id, disponivel := range seats {
		assentos[id] = disponivel
	}

	utils.ResponseOK(w, response.SeatMapResponse{
		Capacidade: len(assentos),
		Assentos:   assentos,
	})
}

// handleProducts handles GET /api/produtos
func (s *Stub) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	utils.ResponseOK(w, s.products)
}

// handlePrices handles GET /api/precos
func (s *Stub) handlePrices(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	utils.ResponseOK(w, s.prices)
}
