package workflow

import (
	"testing"

	"astra-cinemas/internal/dto/response"

	"github.com/stretchr/testify/assert"
)

func TestCartTotalsFormula(t *testing.T) {
	prices := &response.PriceListResponse{IngressoInteiro: 35.00, IngressoMeia: 17.50}
	products := []response.ProductResponse{
		{ID: "p1", Preco: 8.50, Estoque: 10},
		{ID: "p2", Preco: 6.00, Estoque: 10},
	}

	c := NewCart()
	c.addSeat("A01")
	c.addSeat("A03")
	c.setQuantity("p1", 2, 10)

	got := c.Totals(prices, products)
	assert.Equal(t, 70.00, got.TicketSubtotal)
	assert.Equal(t, 17.00, got.ConcessionsSubtotal)
	assert.Equal(t, 87.00, got.GrandTotal)

	c.ticketType = TicketHalf
	got = c.Totals(prices, products)
	assert.Equal(t, 35.00, got.TicketSubtotal)
	assert.Equal(t, 52.00, got.GrandTotal)
}

func TestCartTotalsEmptyAndNilPrices(t *testing.T) {
	c := NewCart()
	assert.Equal(t, Totals{}, c.Totals(nil, nil))

	c.addSeat("A01")
	assert.Equal(t, Totals{}, c.Totals(nil, nil))
}

func TestCartDefaultTicketTypeIsFull(t *testing.T) {
	assert.Equal(t, TicketFull, NewCart().TicketType())
}

func TestCartItemsOmitZeroQuantity(t *testing.T) {
	c := NewCart()
	c.setQuantity("p1", 2, 10)
	c.setQuantity("p2", 1, 10)
	c.setQuantity("p2", 0, 10)

	items := c.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProdutoID)
	assert.Equal(t, 2, items[0].Quantidade)
}

func TestCartSeatsDisplayOrdered(t *testing.T) {
	c := NewCart()
	for _, id := range []string{"B01", "A10", "A02"} {
		c.addSeat(id)
	}
	assert.Equal(t, []string{"A02", "A10", "B01"}, c.Seats())
}

func TestCartQuantityClamp(t *testing.T) {
	c := NewCart()

	c.setQuantity("p1", 7, 3)
	assert.Equal(t, 3, c.Quantity("p1"))

	c.setQuantity("p1", -2, 3)
	assert.Equal(t, 0, c.Quantity("p1"))

	// Negative reported stock behaves as zero.
	c.setQuantity("p1", 1, -5)
	assert.Equal(t, 0, c.Quantity("p1"))
}
