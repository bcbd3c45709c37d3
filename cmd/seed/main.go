package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/GaganMittal847/Companio/internal/config"
	"github.com/GaganMittal847/Companio/internal/database"
	"github.com/GaganMittal847/Companio/internal/logger"
	"github.com/GaganMittal847/Companio/internal/repository"
	"github.com/GaganMittal847/Companio/internal/seed"
)

// Usage: seed [catalog.yaml]
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	catalogPath := "seed/catalog.yaml"
	if len(os.Args) > 1 {
		catalogPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	zl, err := logger.New(logger.Config{Development: true})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	sugar := zl.Sugar()

	f, err := os.Open(catalogPath)
	if err != nil {
		sugar.Fatalf("open %s: %v", catalogPath, err)
	}
	defer f.Close()
	catalog, err := seed.Load(f)
	if err != nil {
		sugar.Fatal(err)
	}

	db, client, err := database.ConnectMongo(cfg.Mongo, "companio-seed", sugar)
	if err != nil {
		sugar.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer func() { _ = client.Disconnect(context.Background()) }()

	st, err := seed.Apply(ctx, catalog, seed.Repos{
		Categories:    repository.NewMongoCategoryRepo(db),
		Subcategories: repository.NewMongoSubcategoryRepo(db),
		Banners:       repository.NewMongoBannerRepo(db),
	}, sugar)
	if err != nil {
		sugar.Errorf("seed failed: %v", err)
		return
	}
	sugar.Infow("seed complete",
		"categories", st.CategoriesCreated,
		"subcategories", st.SubcategoriesCreated,
		"skipped", st.Skipped,
		"banners", st.Banners,
	)
}
