package usecase

import (
	"context"
	"fmt"
	"sync"

	"astra-cinemas/internal/api"
	"astra-cinemas/internal/dto/response"

	"go.uber.org/zap"
)

type CatalogService interface {
	NowShowing(ctx context.Context) ([]response.MovieResponse, error)
	Showtimes(ctx context.Context, filmeID string) ([]response.ShowtimeResponse, error)
	Dashboard(ctx context.Context) *DashboardData
}

// DashboardData is the landing-screen bundle. Each field degrades
// independently to its empty default when its fetch fails.
type DashboardData struct {
	Movies   []response.MovieResponse
	Prices   response.PriceListResponse
	Products []response.ProductResponse
}

type catalogService struct {
	api *api.Client
	log *zap.Logger
}

func NewCatalogService(client *api.Client, log *zap.Logger) CatalogService {
	return &catalogService{
		api: client,
		log: log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) NowShowing(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.api.NowShowing(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("now showing: %w", err)
	}
	s.log.Info("Movies retrieved", zap.Int("count", len(movies)))
	return movies, nil
}

func (s *catalogService) Showtimes(ctx context.Context, filmeID string) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.api.Showtimes(ctx, filmeID)
	if err != nil {
		s.log.Error("Failed to list showtimes",
			zap.Error(err),
			zap.String("filme_id", filmeID),
		)
		return nil, fmt.Errorf("showtimes: %w", err)
	}
	s.log.Info("Showtimes retrieved",
		zap.String("filme_id", filmeID),
		zap.Int("count", len(showtimes)),
	)
	return showtimes, nil
}

// Dashboard fires the independent data-set fetches in parallel and
// joins at a barrier. A failed fetch logs and falls back to the empty
// default for that one data set only; the rest still render.
func (s *catalogService) Dashboard(ctx context.Context) *DashboardData {
	data := &DashboardData{}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		movies, err := s.api.NowShowing(ctx)
		if err != nil {
			s.log.Warn("Dashboard movies unavailable", zap.Error(err))
			return
		}
		data.Movies = movies
	}()

	go func() {
		defer wg.Done()
		prices, err := s.api.Prices(ctx)
		if err != nil {
			s.log.Warn("Dashboard prices unavailable", zap.Error(err))
			return
		}
		data.Prices = *prices
	}()

	go func() {
		defer wg.Done()
		products, err := s.api.Products(ctx)
		if err != nil {
			s.log.Warn("Dashboard products unavailable", zap.Error(err))
			return
		}
		data.Products = products
	}()

	wg.Wait()
	return data
}
