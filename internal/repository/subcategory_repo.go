package repository

import (
	"context"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubcategoryUpdate struct {
	Name       *string
	SCPic      *string
	CategoryID *string
}

type SubcategoryRepository interface {
	Create(ctx context.Context, s *models.Subcategory) error
	FindBySCID(ctx context.Context, scid string) (*models.Subcategory, error)
	// List returns every subcategory when categoryID is empty.
	List(ctx context.Context, categoryID string) ([]models.Subcategory, error)
	Update(ctx context.Context, scid string, u SubcategoryUpdate) (*models.Subcategory, error)
	Delete(ctx context.Context, scid string) error
}

type mongoSubcategoryRepo struct {
	col *mongo.Collection
}

func NewMongoSubcategoryRepo(db *mongo.Database) SubcategoryRepository {
	col := db.Collection("subcategories")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "scid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categoryId", Value: 1}}},
	})
	return &mongoSubcategoryRepo{col: col}
}

func (r *mongoSubcategoryRepo) Create(ctx context.Context, s *models.Subcategory) error {
	if s.CDt.IsZero() {
		s.CDt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, s)
	return duplicate(err)
}

func (r *mongoSubcategoryRepo) FindBySCID(ctx context.Context, scid string) (*models.Subcategory, error) {
	var s models.Subcategory
	if err := r.col.FindOne(ctx, bson.M{"scid": scid}).Decode(&s); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *mongoSubcategoryRepo) List(ctx context.Context, categoryID string) ([]models.Subcategory, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["categoryId"] = categoryID
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "cdt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Subcategory{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoSubcategoryRepo) Update(ctx context.Context, scid string, u SubcategoryUpdate) (*models.Subcategory, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.SCPic != nil {
		set["scpic"] = *u.SCPic
	}
	if u.CategoryID != nil {
		set["categoryId"] = *u.CategoryID
	}
	if len(set) == 0 {
		return r.FindBySCID(ctx, scid)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s models.Subcategory
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"scid": scid}, bson.M{"$set": set}, opts).Decode(&s); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *mongoSubcategoryRepo) Delete(ctx context.Context, scid string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"scid": scid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
