package services

import (
	"context"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.uber.org/zap"
)

type DiscoveryConfig struct {
	MaxDistanceMeters float64
	Limit             int64
}

type discoveryService struct {
	users  repository.UserRepository
	cfg    DiscoveryConfig
	logger *zap.SugaredLogger
}

func NewDiscoveryService(users repository.UserRepository, cfg DiscoveryConfig, logger *zap.SugaredLogger) DiscoveryService {
	return &discoveryService{users: users, cfg: cfg, logger: logger}
}

func (s *discoveryService) Discover(ctx context.Context, req models.SellerSearchRequest) ([]models.SellerResult, error) {
	if req.Location == nil || req.Location.Latitude == nil || req.Location.Longitude == nil {
		return nil, apperr.Validation("Valid location with latitude and longitude is required", nil)
	}
	f := req.Filter
	if f != nil && f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, apperr.Validation("minPrice must not exceed maxPrice", nil)
	}
	if f != nil && f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return nil, apperr.Validation("dateFrom must not be after dateTo", nil)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortHighestRating
	}
	sellers, err := s.users.SearchSellers(ctx, repository.SellerQuery{
		Lat:         *req.Location.Latitude,
		Lng:         *req.Location.Longitude,
		Filter:      f,
		SortBy:      sortBy,
		MaxDistance: s.cfg.MaxDistanceMeters,
		Limit:       s.cfg.Limit,
	})
	if err != nil {
		return nil, apperr.Internal("failed to search sellers", err)
	}
	if len(sellers) == 0 {
		return nil, apperr.NotFound("No sellers found")
	}
	s.logger.Debugw("seller search", "results", len(sellers), "sortBy", sortBy)
	return sellers, nil
}
