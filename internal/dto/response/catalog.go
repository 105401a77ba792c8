package response

// Movie lifecycle statuses as reported by the backend.
const (
	MovieShowing   = "EM_CARTAZ"
	MovieUpcoming  = "EM_BREVE"
	MovieWithdrawn = "RETIRADO"
)

type MovieResponse struct {
	ID             string `json:"id"`
	Titulo         string `json:"titulo"`
	Sinopse        string `json:"sinopse"`
	Classificacao  string `json:"classificacao"`
	DuracaoMinutos int    `json:"duracaoMinutos"`
	Status         string `json:"status"`
}

// Showtime lifecycle statuses.
const (
	ShowtimeAvailable = "DISPONIVEL"
	ShowtimeSoldOut   = "ESGOTADA"
	ShowtimeCancelled = "CANCELADA"
)

type ShowtimeResponse struct {
	ID          string `json:"id"`
	FilmeID     string `json:"filmeId"`
	Sala        string `json:"sala"`
	Inicio      string `json:"inicio"`
	Capacidade  int    `json:"capacidade"`
	Reservados  int    `json:"reservados"`
	Disponiveis int    `json:"disponiveis"`
	Status      string `json:"status"`
}

// SeatMapResponse is the body of GET /api/sessoes/{id}/assentos: seat
// identifier -> availability for one showtime.
type SeatMapResponse struct {
	Capacidade int             `json:"capacidade"`
	Assentos   map[string]bool `json:"assentos"`
}

type ProductResponse struct {
	ID      string  `json:"id"`
	Nome    string  `json:"nome"`
	Preco   float64 `json:"preco"`
	Estoque int     `json:"estoque"`
}

// PriceListResponse is the session-lifetime ticket price list.
type PriceListResponse struct {
	IngressoInteiro float64 `json:"ingressoInteiro"`
	IngressoMeia    float64 `json:"ingressoMeia"`
}
