package usecase

import (
	"context"
	"fmt"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/dto/request"
	"astra-cinemas/internal/dto/response"
	"astra-cinemas/pkg/utils"

	"go.uber.org/zap"
)

// StaffService backs the ticket-validation and rebooking console. Thin
// client calls only; validation outcomes come from the backend.
type StaffService interface {
	ValidateTicket(ctx context.Context, codigo string) (*response.ValidationResponse, error)
	CancelOrder(ctx context.Context, compraID string) error
}

type staffService struct {
	api *api.Client
	log *zap.Logger
}

func NewStaffService(client *api.Client, log *zap.Logger) StaffService {
	return &staffService{
		api: client,
		log: log.With(zap.String("service", "staff")),
	}
}

func (s *staffService) ValidateTicket(ctx context.Context, codigo string) (*response.ValidationResponse, error) {
	req := &request.ValidateTicketRequest{Codigo: codigo}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	result, err := s.api.ValidateTicket(ctx, req)
	if err != nil {
		s.log.Error("Ticket validation failed", zap.Error(err))
		return nil, fmt.Errorf("validate ticket: %w", err)
	}

	s.log.Info("Ticket validated",
		zap.String("codigo", codigo),
		zap.Bool("valido", result.Valido),
	)
	return result, nil
}

func (s *staffService) CancelOrder(ctx context.Context, compraID string) error {
	if compraID == "" {
		return fmt.Errorf("validation failed: compra ID is required")
	}

	if err := s.api.CancelOrder(ctx, compraID); err != nil {
		s.log.Error("Order cancellation failed",
			zap.Error(err),
			zap.String("compra_id", compraID),
		)
		return fmt.Errorf("cancel order: %w", err)
	}

	s.log.Info("Order cancelled", zap.String("compra_id", compraID))
	return nil
}
