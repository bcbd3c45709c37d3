package repository

import (
	"context"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BannerRepository interface {
	List(ctx context.Context) ([]models.Banner, error)
	// Upsert keys banners by image URL.
	Upsert(ctx context.Context, b *models.Banner) error
}

type mongoBannerRepo struct {
	col *mongo.Collection
}

func NewMongoBannerRepo(db *mongo.Database) BannerRepository {
	col := db.Collection("banners")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "imageUrl", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoBannerRepo{col: col}
}

func (r *mongoBannerRepo) List(ctx context.Context) ([]models.Banner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weight", Value: -1}, {Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Banner{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoBannerRepo) Upsert(ctx context.Context, b *models.Banner) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"imageUrl": b.ImageURL},
		bson.M{
			"$set":         bson.M{"weight": b.Weight},
			"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
