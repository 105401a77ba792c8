package usecase

import (
	"astra-cinemas/internal/api"
	"astra-cinemas/internal/data/store"
	"astra-cinemas/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog CatalogService
	Tickets TicketsService
	Staff   StaffService
}

func NewService(client *api.Client, cache store.Store, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Catalog: NewCatalogService(client, log),
		Tickets: NewTicketsService(client, cache, config.Backend.QRDir, log),
		Staff:   NewStaffService(client, log),
	}
}
