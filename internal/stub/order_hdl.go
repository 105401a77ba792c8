package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"astra-cinemas/internal/dto/request"
	"astra-cinemas/internal/dto/response"
	"astra-cinemas/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleReserve handles POST /api/sessoes/{id}/assentos/reservar. A
// seat already taken answers 409 with a human-readable message, the
// shape the client surfaces verbatim.
func (s *Stub) handleReserve(w http.ResponseWriter, r *http.Request) {
	sessaoID := chi.URLParam(r, "id")

	var req request.ReserveSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seats, ok := s.seats[sessaoID]
	if !ok {
		utils.ResponseNotFound(w, "Sessão não encontrada")
		return
	}

	for _, assento := range req.Assentos {
		disponivel, exists := seats[assento]
		if !exists {
			utils.ResponseBadRequest(w, fmt.Sprintf("Assento %s não existe", assento))
			return
		}
		if !disponivel {
			utils.ResponseConflict(w, fmt.Sprintf("Assento %s indisponível", assento))
			return
		}
	}

	for _, assento := range req.Assentos {
		seats[assento] = false
		s.holds[sessaoID][assento] = req.ClienteID
	}
	s.refreshOccupancy(sessaoID)

	s.log.Info("Seats reserved",
		zap.String("sessao_id", sessaoID),
		zap.Strings("assentos", req.Assentos),
		zap.String("cliente_id", req.ClienteID),
	)

	utils.ResponseOK(w, utils.Response{Mensagem: "Assentos reservados"})
}

// handleCreateOrder handles POST /api/compras. Seats must have been
// reserved by the same account in the previous step.
func (s *Stub) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	showtime, ok := s.showtimes[req.SessaoID]
	if !ok {
		utils.ResponseNotFound(w, "Sessão não encontrada")
		return
	}
	if _, ok := s.seats[req.SessaoID]; !ok {
		utils.ResponseInternalError(w, "Mapa de assentos indisponível")
		return
	}

	for _, assento := range req.Assentos {
		if s.holds[req.SessaoID][assento] != req.ClienteID {
			utils.ResponseConflict(w, fmt.Sprintf("Assento %s não reservado para este cliente", assento))
			return
		}
	}

	// Concessions: stock is authoritative here.
	var concessionsTotal float64
	items := make([]response.OrderItemResponse, 0, len(req.Itens))
	for _, item := range req.Itens {
		product := s.findProduct(item.ProdutoID)
		if product == nil {
			utils.ResponseBadRequest(w, fmt.Sprintf("Produto %s não encontrado", item.ProdutoID))
			return
		}
		if item.Quantidade > product.Estoque {
			utils.ResponseConflict(w, fmt.Sprintf("Estoque insuficiente de %s", product.Nome))
			return
		}
		concessionsTotal += product.Preco * float64(item.Quantidade)
		items = append(items, response.OrderItemResponse{
			ProdutoID:  product.ID,
			Nome:       product.Nome,
			Quantidade: item.Quantidade,
			Preco:      product.Preco,
		})
	}
	for _, item := range req.Itens {
		s.findProduct(item.ProdutoID).Estoque -= item.Quantidade
	}

	tierPrice := s.prices.IngressoInteiro
	if req.TipoIngresso == "MEIA" {
		tierPrice = s.prices.IngressoMeia
	}

	order := &response.OrderResponse{
		ID:             uuid.NewString(),
		ClienteID:      req.ClienteID,
		SessaoID:       req.SessaoID,
		Itens:          items,
		Total:          float64(len(req.Assentos))*tierPrice + concessionsTotal,
		FormaPagamento: req.FormaPagamento,
		CriadoEm:       time.Now().Format(time.RFC3339),
	}

	for _, assento := range req.Assentos {
		ticket := response.TicketResponse{
			ID:       uuid.NewString(),
			Assento:  assento,
			Codigo:   utils.GenerateOrderID(),
			Tipo:     req.TipoIngresso,
			SessaoID: req.SessaoID,
			Filme:    s.movieTitle(showtime.FilmeID),
			Inicio:   showtime.Inicio,
		}
		order.Ingressos = append(order.Ingressos, ticket)
		s.tickets[req.ClienteID] = append(s.tickets[req.ClienteID], ticket)
		delete(s.holds[req.SessaoID], assento)
	}

	s.orders[order.ID] = order

	s.log.Info("Order created",
		zap.String("compra_id", order.ID),
		zap.String("cliente_id", req.ClienteID),
		zap.Int("ingressos", len(order.Ingressos)),
		zap.Float64("total", order.Total),
	)

	utils.ResponseCreated(w, order)
}

// handleCancelOrder handles DELETE /api/compras/{id}: frees the seats
// and withdraws the order's active tickets.
func (s *Stub) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	compraID := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[compraID]
	if !ok {
		utils.ResponseNotFound(w, "Compra não encontrada")
		return
	}

	cancelled := make(map[string]bool, len(order.Ingressos))
	for _, ingresso := range order.Ingressos {
		cancelled[ingresso.ID] = true
		if seats, ok := s.seats[order.SessaoID]; ok {
			seats[ingresso.Assento] = true
		}
	}
	s.refreshOccupancy(order.SessaoID)

	remaining := s.tickets[order.ClienteID][:0]
	for _, t := range s.tickets[order.ClienteID] {
		if !cancelled[t.ID] {
			remaining = append(remaining, t)
		}
	}
	s.tickets[order.ClienteID] = remaining

	delete(s.orders, compraID)

	s.log.Info("Order cancelled", zap.String("compra_id", compraID))

	utils.ResponseOK(w, utils.Response{Mensagem: "Compra cancelada"})
}

// handleActiveTickets handles GET /api/ingressos/ativos?clienteId=
func (s *Stub) handleActiveTickets(w http.ResponseWriter, r *http.Request) {
	clienteID := r.URL.Query().Get("clienteId")
	if clienteID == "" {
		utils.ResponseBadRequest(w, "clienteId é obrigatório")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := s.tickets[clienteID]
	if tickets == nil {
		tickets = []response.TicketResponse{}
	}

	utils.ResponseOK(w, tickets)
}

// handleValidateTicket handles POST /api/ingressos/validar. Each scan
// code admits once.
func (s *Stub) handleValidateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Corpo da requisição inválido")
		return
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		utils.ResponseBadRequest(w, utils.FormatValidationErrors(errs))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := s.findTicketByCode(req.Codigo)
	if ticket == nil {
		utils.ResponseOK(w, response.ValidationResponse{
			Valido:   false,
			Mensagem: "Código não reconhecido",
		})
		return
	}

	if s.validated[req.Codigo] {
		utils.ResponseOK(w, response.ValidationResponse{
			Valido:   false,
			Mensagem: "Ingresso já utilizado",
			Ingresso: ticket,
		})
		return
	}

	s.validated[req.Codigo] = true

	utils.ResponseOK(w, response.ValidationResponse{
		Valido:   true,
		Mensagem: "Entrada liberada",
		Ingresso: ticket,
	})
}

// ---------- helpers (callers hold s.mu) ----------

func (s *Stub) findProduct(id string) *response.ProductResponse {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *Stub) movieTitle(filmeID string) string {
	for _, m := range s.movies {
		if m.ID == filmeID {
			return m.Titulo
		}
	}
	return ""
}

func (s *Stub) findTicketByCode(codigo string) *response.TicketResponse {
	for _, list := range s.tickets {
		for i := range list {
			if list[i].Codigo == codigo {
				return &list[i]
			}
		}
	}
	return nil
}

// refreshOccupancy recomputes the derived counters of one showtime.
func (s *Stub) refreshOccupancy(sessaoID string) {
	showtime, ok := s.showtimes[sessaoID]
	if !ok {
		return
	}

	available := 0
	for _, disponivel := range s.seats[sessaoID] {
		if disponivel {
			available++
		}
	}
	showtime.Disponiveis = available
	showtime.Reservados = showtime.Capacidade - available
	if available == 0 {
		showtime.Status = response.ShowtimeSoldOut
	} else if showtime.Status == response.ShowtimeSoldOut {
		showtime.Status = response.ShowtimeAvailable
	}
}
