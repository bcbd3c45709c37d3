// Package seed loads reference catalog data (categories, subcategories and
// banners) from YAML into the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Categories    []models.Category    `yaml:"categories"`
	Subcategories []models.Subcategory `yaml:"subcategories"`
	Banners       []models.Banner      `yaml:"banners"`
}

type Stats struct {
	CategoriesCreated    int
	SubcategoriesCreated int
	Skipped              int
	Banners              int
}

func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	cids := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.CID == "" || cat.Name == "" {
			return fmt.Errorf("categories[%d]: cid and name are required", i)
		}
		cids[cat.CID] = true
	}
	for i, sc := range c.Subcategories {
		if sc.SCID == "" || sc.Name == "" {
			return fmt.Errorf("subcategories[%d]: scid and name are required", i)
		}
		if !cids[sc.CategoryID] {
			return fmt.Errorf("subcategories[%d]: unknown categoryId %q", i, sc.CategoryID)
		}
	}
	for i, b := range c.Banners {
		if b.ImageURL == "" {
			return fmt.Errorf("banners[%d]: imageUrl is required", i)
		}
	}
	return nil
}

type Repos struct {
	Categories    repository.CategoryRepository
	Subcategories repository.SubcategoryRepository
	Banners       repository.BannerRepository
}

// Apply inserts missing records. Existing categories and subcategories are
// left untouched so the command can be re-run.
func Apply(ctx context.Context, c *Catalog, repos Repos, logger *zap.SugaredLogger) (Stats, error) {
	var st Stats
	for i := range c.Categories {
		cat := c.Categories[i]
		switch err := repos.Categories.Create(ctx, &cat); {
		case errors.Is(err, repository.ErrDuplicate):
			st.Skipped++
		case err != nil:
			return st, fmt.Errorf("category %s: %w", cat.CID, err)
		default:
			st.CategoriesCreated++
			logger.Infow("category created", "cid", cat.CID)
		}
	}
	for i := range c.Subcategories {
		sc := c.Subcategories[i]
		switch err := repos.Subcategories.Create(ctx, &sc); {
		case errors.Is(err, repository.ErrDuplicate):
			st.Skipped++
		case err != nil:
			return st, fmt.Errorf("subcategory %s: %w", sc.SCID, err)
		default:
			st.SubcategoriesCreated++
			logger.Infow("subcategory created", "scid", sc.SCID)
		}
	}
	for i := range c.Banners {
		b := c.Banners[i]
		if err := repos.Banners.Upsert(ctx, &b); err != nil {
			return st, fmt.Errorf("banner %s: %w", b.ImageURL, err)
		}
		st.Banners++
	}
	return st, nil
}
