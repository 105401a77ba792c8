// Package workflow implements the ticket purchase flow: seat
// selection, ticket type, concessions, payment, confirmation. Strictly
// linear and user-driven; every transition is an explicit call, no
// stage auto-advances.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/dto/request"
	"astra-cinemas/internal/dto/response"
	"astra-cinemas/internal/seatmap"
	"astra-cinemas/pkg/qr"
	"astra-cinemas/pkg/utils"

	"go.uber.org/zap"
)

type Stage int

const (
	StageSeatSelection Stage = iota
	StageTicketType
	StageConcessions
	StagePayment
	StageConfirmation
)

func (s Stage) String() string {
	switch s {
	case StageSeatSelection:
		return "seat_selection"
	case StageTicketType:
		return "ticket_type"
	case StageConcessions:
		return "concessions"
	case StagePayment:
		return "payment"
	case StageConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// ValidationError is a client-side precondition failure: surfaced to
// the user, no network call issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var (
	ErrWrongStage = errors.New("action not allowed in current stage")
	ErrTerminal   = errors.New("workflow already confirmed")
)

// Confirmation is the terminal payload: the backend's order record
// plus the locally rendered scan-code images, keyed by ticket id.
type Confirmation struct {
	Order   *response.OrderResponse
	QRPaths map[string]string
}

// Purchase drives one order through the stages for a single showtime.
// Not safe for concurrent use; it mirrors a single browsing tab.
type Purchase struct {
	api       *api.Client
	log       *zap.Logger
	clienteID string
	sessaoID  string
	qrDir     string

	stage        Stage
	seats        *seatmap.Map
	cart         *Cart
	prices       *response.PriceListResponse
	products     []response.ProductResponse
	confirmation *Confirmation
}

func NewPurchase(client *api.Client, clienteID, sessaoID, qrDir string, log *zap.Logger) *Purchase {
	return &Purchase{
		api:       client,
		log:       log.With(zap.String("service", "purchase"), zap.String("sessao_id", sessaoID)),
		clienteID: clienteID,
		sessaoID:  sessaoID,
		qrDir:     qrDir,
		stage:     StageSeatSelection,
		cart:      NewCart(),
	}
}

// Start enters the workflow: loads the live availability map for the
// showtime and the session price list. A failed seat fetch degrades to
// the deterministic placeholder map so the screen is not empty; the
// placeholder is never a basis for a reservation.
func (p *Purchase) Start(ctx context.Context) error {
	p.refreshSeats(ctx)

	prices, err := p.api.Prices(ctx)
	if err != nil {
		p.log.Warn("Price list unavailable, totals degrade to zero", zap.Error(err))
		prices = &response.PriceListResponse{}
	}
	p.prices = prices

	return nil
}

func (p *Purchase) refreshSeats(ctx context.Context) {
	seatMap, err := p.api.SeatMap(ctx, p.sessaoID)
	if err != nil {
		p.log.Warn("Seat map fetch failed, using placeholder", zap.Error(err))
		p.seats = seatmap.NewFallback(p.sessaoID)
		return
	}
	p.seats = seatmap.New(seatMap.Capacidade, seatMap.Assentos)
}

func (p *Purchase) Stage() Stage                         { return p.stage }
func (p *Purchase) Cart() *Cart                          { return p.cart }
func (p *Purchase) SeatMap() *seatmap.Map                { return p.seats }
func (p *Purchase) Products() []response.ProductResponse { return p.products }
func (p *Purchase) Prices() *response.PriceListResponse  { return p.prices }
func (p *Purchase) Confirmation() *Confirmation          { return p.confirmation }

// ToggleSeat flips a seat in and out of the selection. Selecting an
// unavailable seat is a no-op; deselecting is always allowed. Returns
// whether the selection changed.
func (p *Purchase) ToggleSeat(id string) bool {
	if p.stage != StageSeatSelection || p.seats == nil {
		return false
	}
	if p.cart.HasSeat(id) {
		p.cart.removeSeat(id)
		return true
	}
	if !p.seats.Available(id) {
		return false
	}
	p.cart.addSeat(id)
	return true
}

// SetTicketType picks the single tier broadcast to all seats.
func (p *Purchase) SetTicketType(tt TicketType) error {
	if p.stage != StageTicketType {
		return ErrWrongStage
	}
	if tt != TicketFull && tt != TicketHalf {
		return &ValidationError{Msg: "Tipo de ingresso inválido"}
	}
	p.cart.ticketType = tt
	return nil
}

// AddItem increments a concession line, clamped to the product's
// reported stock.
func (p *Purchase) AddItem(produtoID string) error {
	if p.stage != StageConcessions {
		return ErrWrongStage
	}
	product := p.findProduct(produtoID)
	if product == nil {
		return &ValidationError{Msg: "Produto não encontrado"}
	}
	p.cart.setQuantity(produtoID, p.cart.Quantity(produtoID)+1, product.Estoque)
	return nil
}

// RemoveItem decrements a concession line, floored at zero.
func (p *Purchase) RemoveItem(produtoID string) error {
	if p.stage != StageConcessions {
		return ErrWrongStage
	}
	product := p.findProduct(produtoID)
	if product == nil {
		return &ValidationError{Msg: "Produto não encontrado"}
	}
	p.cart.setQuantity(produtoID, p.cart.Quantity(produtoID)-1, product.Estoque)
	return nil
}

func (p *Purchase) findProduct(produtoID string) *response.ProductResponse {
	for i := range p.products {
		if p.products[i].ID == produtoID {
			return &p.products[i]
		}
	}
	return nil
}

// SetPaymentMethod records the method required before submit enables.
func (p *Purchase) SetPaymentMethod(pm PaymentMethod) error {
	if p.stage != StagePayment {
		return ErrWrongStage
	}
	switch pm {
	case PaymentPix, PaymentCredit, PaymentDebit:
		p.cart.payment = pm
		return nil
	}
	return &ValidationError{Msg: "Forma de pagamento inválida"}
}

// Totals recomputes the price breakdown for the current cart state.
func (p *Purchase) Totals() Totals {
	return p.cart.Totals(p.prices, p.products)
}

// Next advances one stage. Seat selection requires at least one seat;
// ticket type always has a default; concessions are optional so skip
// and continue behave identically. Forward from payment is Submit.
func (p *Purchase) Next(ctx context.Context) error {
	switch p.stage {
	case StageSeatSelection:
		if p.cart.SeatCount() == 0 {
			return &ValidationError{Msg: "Selecione ao menos um assento"}
		}
		p.stage = StageTicketType
		return nil

	case StageTicketType:
		p.stage = StageConcessions
		p.loadProducts(ctx)
		return nil

	case StageConcessions:
		p.stage = StagePayment
		return nil

	case StagePayment:
		return fmt.Errorf("payment stage advances through Submit: %w", ErrWrongStage)
	}
	return ErrTerminal
}

// loadProducts fetches the concession catalog; errors degrade to an
// empty list rather than a hard failure.
func (p *Purchase) loadProducts(ctx context.Context) {
	products, err := p.api.Products(ctx)
	if err != nil {
		p.log.Warn("Concession catalog unavailable", zap.Error(err))
		p.products = nil
		return
	}
	p.products = products
}

// Back steps one stage backwards without discarding selections. The
// returned flag is true when backing out of seat selection, which
// exits the workflow entirely.
func (p *Purchase) Back() (exited bool) {
	switch p.stage {
	case StageSeatSelection:
		p.Teardown()
		return true
	case StageTicketType:
		p.stage = StageSeatSelection
	case StageConcessions:
		p.stage = StageTicketType
	case StagePayment:
		p.stage = StageConcessions
	}
	return false
}

// Submit runs the two-step finalization: reserve the exact selected
// seats, then create the order. The second step never begins before
// the first resolves. On reservation conflict the availability map is
// re-fetched and the user returns to seat selection; on order-creation
// failure the reservation is not rolled back by the client (the
// backend exposes no release call), which is an accepted limitation.
func (p *Purchase) Submit(ctx context.Context) (*Confirmation, error) {
	if p.stage != StagePayment {
		return nil, ErrWrongStage
	}

	// Pre-submission checks: no network call on failure.
	if p.cart.payment == "" {
		return nil, &ValidationError{Msg: "Selecione uma forma de pagamento"}
	}

	orderReq := &request.CreateOrderRequest{
		ClienteID:      p.clienteID,
		SessaoID:       p.sessaoID,
		Assentos:       p.cart.Seats(),
		TipoIngresso:   string(p.cart.ticketType),
		FormaPagamento: string(p.cart.payment),
		Itens:          p.cart.Items(),
	}
	if errs := utils.ValidateStruct(orderReq); len(errs) > 0 {
		p.log.Warn("Order validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Msg: utils.FormatValidationErrors(errs)}
	}

	// Step 1: hold the seats.
	reserveReq := &request.ReserveSeatsRequest{
		ClienteID: p.clienteID,
		Assentos:  orderReq.Assentos,
	}
	if err := p.api.ReserveSeats(ctx, p.sessaoID, reserveReq); err != nil {
		p.handleReservationFailure(ctx, err)
		return nil, fmt.Errorf("reserve seats: %w", err)
	}

	// Step 2: finalize the order.
	order, err := p.api.CreateOrder(ctx, orderReq)
	if err != nil {
		// Known gap: the seats held in step 1 stay reserved; the
		// backend contract has no client-invocable release.
		p.log.Error("Order creation failed after reservation",
			zap.Error(err),
			zap.Strings("assentos", orderReq.Assentos),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	p.confirmation = &Confirmation{
		Order:   order,
		QRPaths: p.renderCodes(order),
	}
	p.stage = StageConfirmation

	p.log.Info("Order confirmed",
		zap.String("compra_id", order.ID),
		zap.Int("ingressos", len(order.Ingressos)),
		zap.Float64("total", order.Total),
		zap.String("forma_pagamento", order.FormaPagamento),
	)

	return p.confirmation, nil
}

// handleReservationFailure re-fetches availability, prunes selections
// that went away, and sends the user back to seat selection. No
// automatic retry. When the re-fetch itself fails and the map degrades
// to the placeholder, the selection is kept untouched: the placeholder
// is display-only and the next reserve attempt re-validates
// server-side anyway.
func (p *Purchase) handleReservationFailure(ctx context.Context, cause error) {
	p.log.Warn("Seat reservation failed", zap.Error(cause))

	p.refreshSeats(ctx)
	if !p.seats.Fallback {
		for _, id := range p.cart.Seats() {
			if !p.seats.Available(id) {
				p.cart.removeSeat(id)
			}
		}
	}
	p.stage = StageSeatSelection
}

// renderCodes draws one scannable image per ticket. Rendering is
// local; a failed render leaves that ticket without an image but does
// not fail the confirmation.
func (p *Purchase) renderCodes(order *response.OrderResponse) map[string]string {
	paths := make(map[string]string, len(order.Ingressos))
	for _, ingresso := range order.Ingressos {
		path, err := qr.Render(p.qrDir, ingresso.Codigo)
		if err != nil {
			p.log.Warn("QR render failed",
				zap.String("ingresso_id", ingresso.ID),
				zap.Error(err),
			)
			continue
		}
		paths[ingresso.ID] = path
	}
	return paths
}

// Teardown destroys all workflow-local state. Called on abandon and on
// leaving the confirmation screen.
func (p *Purchase) Teardown() {
	p.cart = NewCart()
	p.confirmation = nil
	p.products = nil
	p.stage = StageSeatSelection
}
