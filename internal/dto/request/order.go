package request

// ReserveSeatsRequest is the body of POST /api/sessoes/{id}/assentos/reservar.
type ReserveSeatsRequest struct {
	ClienteID string   `json:"clienteId" validate:"required"`
	Assentos  []string `json:"assentos" validate:"required,min=1"`
}

// OrderItem is one concession line; zero-quantity lines are never sent.
type OrderItem struct {
	ProdutoID  string `json:"produtoId" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"required,min=1"`
}

// CreateOrderRequest is the body of POST /api/compras. TipoIngresso is
// uppercased on the wire and applies to every seat in the order.
type CreateOrderRequest struct {
	ClienteID      string      `json:"clienteId" validate:"required"`
	SessaoID       string      `json:"sessaoId" validate:"required"`
	Assentos       []string    `json:"assentos" validate:"required,min=1"`
	TipoIngresso   string      `json:"tipoIngresso" validate:"required,oneof=INTEIRA MEIA"`
	FormaPagamento string      `json:"formaPagamento" validate:"required,oneof=pix credito debito"`
	Itens          []OrderItem `json:"itens" validate:"omitempty,dive"`
}
