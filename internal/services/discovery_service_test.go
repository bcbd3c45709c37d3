package services

import (
	"context"
	"testing"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func location(lat, lng float64) *models.Location {
	return &models.Location{Latitude: &lat, Longitude: &lng}
}

func TestDiscoverDefaults(t *testing.T) {
	users := newFakeUsers()
	users.sellers = []models.SellerResult{{ID: "USER2", Rating: 4.8}, {ID: "USER3", Rating: 4.1}}
	svc := NewDiscoveryService(users, DiscoveryConfig{MaxDistanceMeters: 20000, Limit: 50}, nopLogger)

	out, err := svc.Discover(context.Background(), models.SellerSearchRequest{
		Location: location(28.61, 77.20),
		Filter:   &models.SellerFilter{CatList: []string{"C1"}},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, models.SortHighestRating, users.lastQ.SortBy)
	assert.Equal(t, 20000.0, users.lastQ.MaxDistance)
	assert.Equal(t, int64(50), users.lastQ.Limit)
	assert.Equal(t, 28.61, users.lastQ.Lat)
	assert.Equal(t, 77.20, users.lastQ.Lng)
}

func TestDiscoverNoResults(t *testing.T) {
	svc := NewDiscoveryService(newFakeUsers(), DiscoveryConfig{}, nopLogger)
	_, err := svc.Discover(context.Background(), models.SellerSearchRequest{Location: location(1, 2), SortBy: models.SortNearest})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDiscoverValidation(t *testing.T) {
	svc := NewDiscoveryService(newFakeUsers(), DiscoveryConfig{}, nopLogger)
	ctx := context.Background()

	_, err := svc.Discover(ctx, models.SellerSearchRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Discover(ctx, models.SellerSearchRequest{
		Location: location(1, 2),
		Filter:   &models.SellerFilter{MinPrice: ptr(500.0), MaxPrice: ptr(100.0)},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Discover(ctx, models.SellerSearchRequest{
		Location: location(1, 2),
		Filter:   &models.SellerFilter{DateFrom: "2026-03-10", DateTo: "2026-03-01"},
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
