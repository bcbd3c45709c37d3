package repository

import (
	"context"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AddressRepository interface {
	Create(ctx context.Context, a *models.Address) error
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
}

type mongoAddressRepo struct {
	col *mongo.Collection
}

func NewMongoAddressRepo(db *mongo.Database) AddressRepository {
	col := db.Collection("addresses")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return &mongoAddressRepo{col: col}
}

func (r *mongoAddressRepo) Create(ctx context.Context, a *models.Address) error {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *mongoAddressRepo) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Address{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
