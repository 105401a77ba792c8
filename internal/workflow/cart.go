package workflow

import (
	"astra-cinemas/internal/dto/request"
	"astra-cinemas/internal/dto/response"
	"astra-cinemas/internal/seatmap"
)

// TicketType is the pricing tier applied uniformly to every seat in
// the order. The backend contract has no per-seat type.
type TicketType string

const (
	TicketFull TicketType = "INTEIRA"
	TicketHalf TicketType = "MEIA"
)

type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentCredit PaymentMethod = "credito"
	PaymentDebit  PaymentMethod = "debito"
)

// Totals is the recomputed price breakdown of the current cart state.
type Totals struct {
	TicketSubtotal      float64
	ConcessionsSubtotal float64
	GrandTotal          float64
}

// Cart is the ephemeral client-local order under construction. It
// exists between "start purchase" and submit or abandon, and is
// destroyed on either outcome.
type Cart struct {
	seats      map[string]struct{}
	ticketType TicketType
	items      map[string]int
	payment    PaymentMethod
}

func NewCart() *Cart {
	return &Cart{
		seats:      make(map[string]struct{}),
		ticketType: TicketFull, // default tier
		items:      make(map[string]int),
	}
}

func (c *Cart) HasSeat(id string) bool {
	_, ok := c.seats[id]
	return ok
}

func (c *Cart) addSeat(id string)    { c.seats[id] = struct{}{} }
func (c *Cart) removeSeat(id string) { delete(c.seats, id) }

func (c *Cart) SeatCount() int { return len(c.seats) }

// Seats returns the selection in display order (row, then number).
func (c *Cart) Seats() []string {
	ids := make([]string, 0, len(c.seats))
	for id := range c.seats {
		ids = append(ids, id)
	}
	seatmap.SortIDs(ids)
	return ids
}

func (c *Cart) TicketType() TicketType { return c.ticketType }

func (c *Cart) PaymentMethod() PaymentMethod { return c.payment }

// Quantity returns the current count of one product in the cart.
func (c *Cart) Quantity(produtoID string) int { return c.items[produtoID] }

// setQuantity clamps to [0, estoque]; the backend's reported stock is
// the ceiling, zero the floor.
func (c *Cart) setQuantity(produtoID string, qty, estoque int) {
	if estoque < 0 {
		estoque = 0
	}
	if qty > estoque {
		qty = estoque
	}
	if qty <= 0 {
		delete(c.items, produtoID)
		return
	}
	c.items[produtoID] = qty
}

// Items lists the concession lines for submission, omitting
// zero-quantity entries.
func (c *Cart) Items() []request.OrderItem {
	items := make([]request.OrderItem, 0, len(c.items))
	for produtoID, qty := range c.items {
		if qty <= 0 {
			continue
		}
		items = append(items, request.OrderItem{ProdutoID: produtoID, Quantidade: qty})
	}
	return items
}

// Totals recomputes the price breakdown from scratch: seat count times
// the tier price, plus unit price times quantity per concession line.
// Never cached across stage transitions.
func (c *Cart) Totals(prices *response.PriceListResponse, products []response.ProductResponse) Totals {
	var t Totals

	if prices != nil {
		t.TicketSubtotal = float64(len(c.seats)) * priceFor(c.ticketType, prices)
	}

	unitPrices := make(map[string]float64, len(products))
	for _, p := range products {
		unitPrices[p.ID] = p.Preco
	}
	for produtoID, qty := range c.items {
		t.ConcessionsSubtotal += unitPrices[produtoID] * float64(qty)
	}

	t.GrandTotal = t.TicketSubtotal + t.ConcessionsSubtotal
	return t
}

func priceFor(tt TicketType, prices *response.PriceListResponse) float64 {
	if tt == TicketHalf {
		return prices.IngressoMeia
	}
	return prices.IngressoInteiro
}
