package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"astra-cinemas/internal/dto/request"
	"astra-cinemas/internal/dto/response"
)

// ReserveSeats asks the backend to hold the exact listed seats for one
// showtime. Seat-locking semantics live entirely on the backend; a
// conflict comes back as *Error with the backend's message.
func (c *Client) ReserveSeats(ctx context.Context, sessaoID string, req *request.ReserveSeatsRequest) error {
	path := fmt.Sprintf("/api/sessoes/%s/assentos/reservar", sessaoID)
	if err := c.do(ctx, http.MethodPost, path, req, nil); err != nil {
		return fmt.Errorf("reserve seats of showtime %s: %w", sessaoID, err)
	}
	return nil
}

// CreateOrder finalizes a purchase in one request and returns the
// confirmation with per-seat tickets and scan codes.
func (c *Client) CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	var order response.OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/compras", req, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// CancelOrder voids an order, used by the staff rebooking console.
func (c *Client) CancelOrder(ctx context.Context, compraID string) error {
	path := fmt.Sprintf("/api/compras/%s", compraID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", compraID, err)
	}
	return nil
}

// ActiveTickets lists an account's not-yet-used tickets.
func (c *Client) ActiveTickets(ctx context.Context, clienteID string) ([]response.TicketResponse, error) {
	var tickets []response.TicketResponse
	path := "/api/ingressos/ativos?clienteId=" + url.QueryEscape(clienteID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, fmt.Errorf("active tickets of %s: %w", clienteID, err)
	}
	return tickets, nil
}

// ValidateTicket checks a scanned code at venue entry.
func (c *Client) ValidateTicket(ctx context.Context, req *request.ValidateTicketRequest) (*response.ValidationResponse, error) {
	var result response.ValidationResponse
	if err := c.do(ctx, http.MethodPost, "/api/ingressos/validar", req, &result); err != nil {
		return nil, fmt.Errorf("validate ticket: %w", err)
	}
	return &result, nil
}
