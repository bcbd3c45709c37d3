package database

import (
	"context"
	"fmt"
	"time"

	"github.com/GaganMittal847/Companio/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 15 * time.Second

func mongoClientOptions(cfg config.MongoCfg, appName string) *options.ClientOptions {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	return opts
}

// ConnectMongo dials the cluster and pings the configured database on the
// primary, so a bad database name or missing credentials fail at startup.
func ConnectMongo(cfg config.MongoCfg, appName string, logger *zap.SugaredLogger) (*mongo.Database, *mongo.Client, error) {
	opts := mongoClientOptions(cfg, appName)
	ctx, cancel := context.WithTimeout(context.Background(), *opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Errorw("MongoDB connection failed", "error", err)
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	ping := db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}, options.RunCmd().SetReadPreference(readpref.Primary()))
	if err := ping.Err(); err != nil {
		logger.Errorw("MongoDB ping failed", "database", cfg.Database, "error", err)
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo database %s: %w", cfg.Database, err)
	}

	logger.Infow("MongoDB connected",
		"database", cfg.Database,
		"transactions", cfg.Transactions,
		"maxPoolSize", cfg.MaxPoolSize,
	)
	return db, client, nil
}
