package repository

import (
	"context"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	FindByCID(ctx context.Context, cid string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, cid string, name, pic *string) (*models.Category, error)
	Delete(ctx context.Context, cid string) error
}

type mongoCategoryRepo struct {
	col *mongo.Collection
}

func NewMongoCategoryRepo(db *mongo.Database) CategoryRepository {
	col := db.Collection("categories")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "cid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoCategoryRepo{col: col}
}

func (r *mongoCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if c.CDt.IsZero() {
		c.CDt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, c)
	return duplicate(err)
}

func (r *mongoCategoryRepo) FindByCID(ctx context.Context, cid string) (*models.Category, error) {
	var c models.Category
	if err := r.col.FindOne(ctx, bson.M{"cid": cid}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *mongoCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "cdt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoCategoryRepo) Update(ctx context.Context, cid string, name, pic *string) (*models.Category, error) {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if pic != nil {
		set["cpic"] = *pic
	}
	if len(set) == 0 {
		return r.FindByCID(ctx, cid)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Category
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"cid": cid}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *mongoCategoryRepo) Delete(ctx context.Context, cid string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"cid": cid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
