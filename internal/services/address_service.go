package services

import (
	"context"
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.uber.org/zap"
)

type addressService struct {
	addresses repository.AddressRepository
	users     repository.UserRepository
	logger    *zap.SugaredLogger
}

func NewAddressService(addresses repository.AddressRepository, users repository.UserRepository, logger *zap.SugaredLogger) AddressService {
	return &addressService{addresses: addresses, users: users, logger: logger}
}

func (s *addressService) Add(ctx context.Context, req models.AddAddressRequest) (*models.Address, error) {
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		return nil, storeErr(err, "User not found")
	}
	a := &models.Address{
		UserID:     req.UserID,
		Name:       strings.TrimSpace(req.Name),
		MobileNo:   req.MobileNo,
		Address:    strings.TrimSpace(req.Address),
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	if req.Location != nil {
		a.GeoLocation = req.Location.Point()
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, apperr.Internal("failed to save address", err)
	}
	s.logger.Infow("address added", "userId", a.UserID, "addressId", a.ID.Hex(), "city", a.City)
	return a, nil
}

func (s *addressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Validation("userId is required", nil)
	}
	out, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch addresses", err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("No address found")
	}
	return out, nil
}
