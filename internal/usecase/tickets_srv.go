package usecase

import (
	"context"
	"fmt"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/data/store"
	"astra-cinemas/pkg/qr"

	"go.uber.org/zap"
)

type TicketsService interface {
	// Refresh reconciles the backend's active-ticket listing into the
	// local cache and returns the merged view. Best effort: a failed
	// backend fetch degrades to the cached copy, a failed cache to the
	// backend copy.
	Refresh(ctx context.Context, clienteID string) []store.CachedTicket

	// List reads the cached tickets without touching the backend.
	List(ctx context.Context, clienteID string) ([]store.CachedTicket, error)

	// RenderCode draws a cached ticket's scan code for re-display.
	RenderCode(codigo string) (string, error)
}

type ticketsService struct {
	api   *api.Client
	cache store.Store
	qrDir string
	log   *zap.Logger
}

func NewTicketsService(client *api.Client, cache store.Store, qrDir string, log *zap.Logger) TicketsService {
	return &ticketsService{
		api:   client,
		cache: cache,
		qrDir: qrDir,
		log:   log.With(zap.String("service", "tickets")),
	}
}

func (s *ticketsService) Refresh(ctx context.Context, clienteID string) []store.CachedTicket {
	if clienteID == "" {
		return nil
	}

	local, err := s.cache.Load(ctx, clienteID)
	if err != nil {
		s.log.Warn("Ticket cache unreadable", zap.Error(err))
		local = nil
	}

	remote, err := s.api.ActiveTickets(ctx, clienteID)
	if err != nil {
		s.log.Warn("Active ticket listing unavailable, serving cache",
			zap.Error(err),
			zap.String("cliente_id", clienteID),
		)
		return local
	}

	cached := make([]store.CachedTicket, len(remote))
	for i, t := range remote {
		cached[i] = store.FromResponse(t)
	}

	merged := store.Merge(local, cached)

	if err := s.cache.Save(ctx, clienteID, merged); err != nil {
		s.log.Warn("Ticket cache write failed", zap.Error(err))
	}

	s.log.Info("Ticket cache reconciled",
		zap.String("cliente_id", clienteID),
		zap.Int("local", len(local)),
		zap.Int("remote", len(remote)),
		zap.Int("merged", len(merged)),
	)

	return merged
}

func (s *ticketsService) List(ctx context.Context, clienteID string) ([]store.CachedTicket, error) {
	tickets, err := s.cache.Load(ctx, clienteID)
	if err != nil {
		return nil, fmt.Errorf("list cached tickets: %w", err)
	}
	return tickets, nil
}

func (s *ticketsService) RenderCode(codigo string) (string, error) {
	path, err := qr.Render(s.qrDir, codigo)
	if err != nil {
		return "", fmt.Errorf("render scan code: %w", err)
	}
	return path, nil
}
