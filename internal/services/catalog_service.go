package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/cache"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.uber.org/zap"
)

const (
	categoriesKey       = "catalog:categories"
	subcategoriesPrefix = "catalog:subcategories:"
	bannersKey          = "catalog:banners"
)

func subcategoriesKey(categoryID string) string {
	if categoryID == "" {
		return subcategoriesPrefix + "all"
	}
	return subcategoriesPrefix + categoryID
}

type catalogService struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	banners       repository.BannerRepository
	cache         cache.Cache
	ttl           time.Duration
	logger        *zap.SugaredLogger
}

func NewCatalogService(
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	banners repository.BannerRepository,
	c cache.Cache,
	ttl time.Duration,
	logger *zap.SugaredLogger,
) CatalogService {
	return &catalogService{
		categories:    categories,
		subcategories: subcategories,
		banners:       banners,
		cache:         c,
		ttl:           ttl,
		logger:        logger,
	}
}

// cached serves key from the cache, loading and storing it on a miss.
// Cache failures only cost a round trip to Mongo.
func cached[T any](ctx context.Context, s *catalogService, key string, load func() ([]T, error)) ([]T, error) {
	var out []T
	hit, err := s.cache.GetJSON(ctx, key, &out)
	if err != nil {
		s.logger.Warnw("cache read failed", "key", key, "error", err)
	}
	if hit {
		return out, nil
	}
	out, err = load()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, key, out, s.ttl); err != nil {
		s.logger.Warnw("cache write failed", "key", key, "error", err)
	}
	return out, nil
}

func (s *catalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warnw("cache invalidation failed", "keys", keys, "error", err)
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	out, err := cached(ctx, s, categoriesKey, func() ([]models.Category, error) {
		return s.categories.List(ctx)
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch categories", err)
	}
	return out, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	c := &models.Category{
		CID:  strings.TrimSpace(req.CID),
		Name: strings.TrimSpace(req.Name),
		CPic: req.CPic,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Category with this cid already exists")
		}
		return nil, apperr.Internal("failed to create category", err)
	}
	s.invalidate(ctx, categoriesKey)
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, req models.CategoryUpdateRequest) (*models.Category, error) {
	c, err := s.categories.Update(ctx, req.CID, req.Name, req.CPic)
	if err != nil {
		return nil, storeErr(err, "Category not found")
	}
	s.invalidate(ctx, categoriesKey)
	return c, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, cid string) error {
	if err := s.categories.Delete(ctx, cid); err != nil {
		return storeErr(err, "Category not found")
	}
	s.invalidate(ctx, categoriesKey)
	return nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error) {
	out, err := cached(ctx, s, subcategoriesKey(categoryID), func() ([]models.Subcategory, error) {
		return s.subcategories.List(ctx, categoryID)
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch subcategories", err)
	}
	return out, nil
}

func (s *catalogService) CreateSubcategory(ctx context.Context, req models.SubcategoryRequest) (*models.Subcategory, error) {
	if _, err := s.categories.FindByCID(ctx, req.CategoryID); err != nil {
		return nil, storeErr(err, "Category not found")
	}
	sc := &models.Subcategory{
		SCID:       strings.TrimSpace(req.SCID),
		Name:       strings.TrimSpace(req.Name),
		SCPic:      req.SCPic,
		CategoryID: req.CategoryID,
	}
	if err := s.subcategories.Create(ctx, sc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Subcategory with this scid already exists")
		}
		return nil, apperr.Internal("failed to create subcategory", err)
	}
	s.invalidate(ctx, subcategoriesKey(""), subcategoriesKey(sc.CategoryID))
	return sc, nil
}

func (s *catalogService) UpdateSubcategory(ctx context.Context, scid string, req models.SubcategoryUpdateRequest) (*models.Subcategory, error) {
	prev, err := s.subcategories.FindBySCID(ctx, scid)
	if err != nil {
		return nil, storeErr(err, "Subcategory not found")
	}
	if req.CategoryID != nil && *req.CategoryID != prev.CategoryID {
		if _, err := s.categories.FindByCID(ctx, *req.CategoryID); err != nil {
			return nil, storeErr(err, "Category not found")
		}
	}
	sc, err := s.subcategories.Update(ctx, scid, repository.SubcategoryUpdate{
		Name:       req.Name,
		SCPic:      req.SCPic,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return nil, storeErr(err, "Subcategory not found")
	}
	s.invalidate(ctx, subcategoriesKey(""), subcategoriesKey(prev.CategoryID), subcategoriesKey(sc.CategoryID))
	return sc, nil
}

func (s *catalogService) DeleteSubcategory(ctx context.Context, scid string) error {
	prev, err := s.subcategories.FindBySCID(ctx, scid)
	if err != nil {
		return storeErr(err, "Subcategory not found")
	}
	if err := s.subcategories.Delete(ctx, scid); err != nil {
		return storeErr(err, "Subcategory not found")
	}
	s.invalidate(ctx, subcategoriesKey(""), subcategoriesKey(prev.CategoryID))
	return nil
}

func (s *catalogService) ListBanners(ctx context.Context) ([]models.Banner, error) {
	out, err := cached(ctx, s, bannersKey, func() ([]models.Banner, error) {
		return s.banners.List(ctx)
	})
	if err != nil {
		return nil, apperr.Internal("failed to fetch banners", err)
	}
	return out, nil
}
