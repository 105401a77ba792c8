package stub

import (
	"fmt"
	"time"

	"astra-cinemas/internal/dto/response"
)

// seed loads a small fixed catalog: two movies in exhibition, one
// upcoming, two showtimes per movie in exhibition, a 5x8 seating chart
// each, three concession products and the session price list.
func (s *Stub) seed() {
	s.movies = []response.MovieResponse{
		{
			ID:             "f1",
			Titulo:         "A Noite das Estrelas",
			Sinopse:        "Um astrônomo descobre um sinal vindo de um cometa.",
			Classificacao:  "12",
			DuracaoMinutos: 118,
			Status:         response.MovieShowing,
		},
		{
			ID:             "f2",
			Titulo:         "Maré Alta",
			Sinopse:        "Drama de uma vila de pescadores no litoral norte.",
			Classificacao:  "14",
			DuracaoMinutos: 102,
			Status:         response.MovieShowing,
		},
		{
			ID:             "f3",
			Titulo:         "O Último Projetor",
			Sinopse:        "Documentário sobre as salas de rua do interior.",
			Classificacao:  "L",
			DuracaoMinutos: 95,
			Status:         response.MovieUpcoming,
		},
	}

	base := time.Now().Add(4 * time.Hour).Truncate(time.Hour)
	sessionID := 0
	for _, filmeID := range []string{"f1", "f2"} {
		for i := 0; i < 2; i++ {
			sessionID++
			id := fmt.Sprintf("s%d", sessionID)
			s.showtimes[id] = &response.ShowtimeResponse{
				ID:          id,
				FilmeID:     filmeID,
				Sala:        fmt.Sprintf("Sala %d", sessionID),
				Inicio:      base.Add(time.Duration(3*i) * time.Hour).Format(time.RFC3339),
				Capacidade:  40,
				Disponiveis: 40,
				Status:      response.ShowtimeAvailable,
			}
			s.seats[id] = seedSeats()
			s.holds[id] = make(map[string]string)
		}
	}

	s.products = []response.ProductResponse{
		{ID: "p1", Nome: "Pipoca Grande", Preco: 12.00, Estoque: 25},
		{ID: "p2", Nome: "Refrigerante 500ml", Preco: 8.50, Estoque: 40},
		{ID: "p3", Nome: "Combo Casal", Preco: 29.90, Estoque: 10},
	}

	s.prices = response.PriceListResponse{
		IngressoInteiro: 35.00,
		IngressoMeia:    17.50,
	}
}

// seedSeats builds a 5-row by 8-seat chart, all available.
func seedSeats() map[string]bool {
	seats := make(map[string]bool, 40)
	for r := 0; r < 5; r++ {
		letter := string(rune('A' + r))
		for n := 1; n <= 8; n++ {
			seats[fmt.Sprintf("%s%02d", letter, n)] = true
		}
	}
	return seats
}
