package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CalendarRepository interface {
	FindBySeller(ctx context.Context, sellerID string) (*models.Calendar, error)
	// UpsertEntry replaces the seller's entry for the entry's (category,
	// subcategory) pair or appends it, creating the calendar if needed.
	UpsertEntry(ctx context.Context, sellerID, name string, e models.CalendarEntry) (*models.Calendar, error)
}

type mongoCalendarRepo struct {
	col *mongo.Collection
}

func NewMongoCalendarRepo(db *mongo.Database) CalendarRepository {
	col := db.Collection(calendarCollection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "sellerID", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoCalendarRepo{col: col}
}

func (r *mongoCalendarRepo) FindBySeller(ctx context.Context, sellerID string) (*models.Calendar, error) {
	var c models.Calendar
	if err := r.col.FindOne(ctx, bson.M{"sellerID": sellerID}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *mongoCalendarRepo) UpsertEntry(ctx context.Context, sellerID, name string, e models.CalendarEntry) (*models.Calendar, error) {
	// Two writers creating the same calendar collide on the unique sellerID
	// index; the loser retries and then takes the replace path.
	op := func() error {
		err := r.upsertEntry(ctx, sellerID, name, e)
		if err == nil || errors.Is(err, ErrDuplicate) {
			return err
		}
		return backoff.Permanent(err)
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return r.FindBySeller(ctx, sellerID)
}

func (r *mongoCalendarRepo) upsertEntry(ctx context.Context, sellerID, name string, e models.CalendarEntry) error {
	now := time.Now().UTC()
	key := bson.M{"categoryID": e.CategoryID, "subCategoryID": e.SubCategoryID}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"sellerID": sellerID, "categories": bson.M{"$elemMatch": key}},
		bson.M{"$set": bson.M{"categories.$": e, "name": name, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"sellerID": sellerID, "categories": bson.M{"$not": bson.M{"$elemMatch": key}}},
		bson.M{
			"$set":         bson.M{"name": name, "updatedAt": now},
			"$push":        bson.M{"categories": e},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return duplicate(err)
}
