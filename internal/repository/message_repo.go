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

type MessageUpdate struct {
	Msg *string
	URL *string
	At  time.Time
}

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error
	ListByRequest(ctx context.Context, requestID string) ([]models.Message, error)
	Update(ctx context.Context, id string, u MessageUpdate) (*models.Message, error)
	Delete(ctx context.Context, id string) error
}

type mongoMessageRepo struct {
	col *mongo.Collection
}

func NewMongoMessageRepo(db *mongo.Database) MessageRepository {
	col := db.Collection("messages")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "requestId", Value: 1}, {Key: "cDt", Value: 1}},
		Options: options.Index().SetName("request_cdt_idx"),
	})
	return &mongoMessageRepo{col: col}
}

func (r *mongoMessageRepo) Create(ctx context.Context, m *models.Message) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}

func (r *mongoMessageRepo) ListByRequest(ctx context.Context, requestID string) ([]models.Message, error) {
	filter, opts := messagesByRequest(requestID)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// messagesByRequest orders by creation time; _id breaks ties between
// messages written in the same millisecond.
func messagesByRequest(requestID string) (bson.M, *options.FindOptions) {
	return bson.M{"requestId": requestID},
		options.Find().SetSort(bson.D{{Key: "cDt", Value: 1}, {Key: "_id", Value: 1}})
}

func (r *mongoMessageRepo) Update(ctx context.Context, id string, u MessageUpdate) (*models.Message, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"cDt": u.At}
	if u.Msg != nil {
		set["msg"] = *u.Msg
	}
	if u.URL != nil {
		set["url"] = *u.URL
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Message
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *mongoMessageRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
