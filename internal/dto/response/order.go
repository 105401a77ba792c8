package response

// TicketResponse is one per-seat ticket record inside an order. Codigo
// is the backend-issued scan code; the client renders it, never
// interprets it.
type TicketResponse struct {
	ID       string `json:"id"`
	Assento  string `json:"assento"`
	Codigo   string `json:"codigo"`
	Tipo     string `json:"tipo"`
	SessaoID string `json:"sessaoId"`
	Filme    string `json:"filme,omitempty"`
	Inicio   string `json:"inicio,omitempty"`
}

type OrderItemResponse struct {
	ProdutoID  string  `json:"produtoId"`
	Nome       string  `json:"nome"`
	Quantidade int     `json:"quantidade"`
	Preco      float64 `json:"preco"`
}

// OrderResponse is the confirmation returned by POST /api/compras.
type OrderResponse struct {
	ID             string              `json:"id"`
	ClienteID      string              `json:"clienteId"`
	SessaoID       string              `json:"sessaoId"`
	Ingressos      []TicketResponse    `json:"ingressos"`
	Itens          []OrderItemResponse `json:"itens,omitempty"`
	Total          float64             `json:"total"`
	FormaPagamento string              `json:"formaPagamento"`
	CriadoEm       string              `json:"criadoEm"`
}

// ValidationResponse is the staff-side answer to a scanned code.
type ValidationResponse struct {
	Valido   bool            `json:"valido"`
	Mensagem string          `json:"mensagem"`
	Ingresso *TicketResponse `json:"ingresso,omitempty"`
}
