package api

import (
	"context"
	"fmt"
	"net/http"

	"astra-cinemas/internal/dto/response"
)

// NowShowing lists the movies currently in exhibition.
func (c *Client) NowShowing(ctx context.Context) ([]response.MovieResponse, error) {
	var movies []response.MovieResponse
	if err := c.do(ctx, http.MethodGet, "/api/filmes/em-cartaz", nil, &movies); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// Showtimes lists the showtimes of one movie.
func (c *Client) Showtimes(ctx context.Context, filmeID string) ([]response.ShowtimeResponse, error) {
	var showtimes []response.ShowtimeResponse
	path := fmt.Sprintf("/api/sessoes/filme/%s", filmeID)
	if err := c.do(ctx, http.MethodGet, path, nil, &showtimes); err != nil {
		return nil, fmt.Errorf("list showtimes of movie %s: %w", filmeID, err)
	}
	return showtimes, nil
}

// SeatMap fetches the live availability map of one showtime. Always
// fetched fresh; the client never caches seat state.
func (c *Client) SeatMap(ctx context.Context, sessaoID string) (*response.SeatMapResponse, error) {
	var seatMap response.SeatMapResponse
	path := fmt.Sprintf("/api/sessoes/%s/assentos", sessaoID)
	if err := c.do(ctx, http.MethodGet, path, nil, &seatMap); err != nil {
		return nil, fmt.Errorf("seat map of showtime %s: %w", sessaoID, err)
	}
	return &seatMap, nil
}

// Products lists the concession catalog with remaining stock.
func (c *Client) Products(ctx context.Context) ([]response.ProductResponse, error) {
	var products []response.ProductResponse
	if err := c.do(ctx, http.MethodGet, "/api/produtos", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Prices fetches the current ticket price list.
func (c *Client) Prices(ctx context.Context) (*response.PriceListResponse, error) {
	var prices response.PriceListResponse
	if err := c.do(ctx, http.MethodGet, "/api/precos", nil, &prices); err != nil {
		return nil, fmt.Errorf("price list: %w", err)
	}
	return &prices, nil
}
