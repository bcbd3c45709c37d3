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

type BookingRepository interface {
	Create(ctx context.Context, b *models.BookingRequest) error
	FindByID(ctx context.Context, id string) (*models.BookingRequest, error)
	// Transition moves the request to `to` only while its status is one of
	// `from`. A request in any other status yields ErrConflict.
	Transition(ctx context.Context, id string, from []models.RequestStatus, to models.RequestStatus, payment models.PaymentStatus) (*models.BookingRequest, error)
	Find(ctx context.Context, f models.BookingFilter) ([]models.BookingRequest, error)
}

type mongoBookingRepo struct {
	col *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	col := db.Collection("requests")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "companionId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	})
	return &mongoBookingRepo{col: col}
}

func (r *mongoBookingRepo) Create(ctx context.Context, b *models.BookingRequest) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *mongoBookingRepo) FindByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var b models.BookingRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) Transition(ctx context.Context, id string, from []models.RequestStatus, to models.RequestStatus, payment models.PaymentStatus) (*models.BookingRequest, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.BookingRequest
	err = r.col.FindOneAndUpdate(ctx,
		transitionFilter(oid, from),
		transitionUpdate(to, payment, time.Now().UTC()),
		opts,
	).Decode(&b)
	if err == nil {
		return &b, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}
	if _, ferr := r.FindByID(ctx, id); ferr != nil {
		return nil, ferr
	}
	return nil, ErrConflict
}

// transitionFilter only matches while the request is still in one of the
// source states, so two racing transitions cannot both apply.
func transitionFilter(id primitive.ObjectID, from []models.RequestStatus) bson.M {
	return bson.M{"_id": id, "requestStatus": bson.M{"$in": from}}
}

func transitionUpdate(to models.RequestStatus, payment models.PaymentStatus, now time.Time) bson.M {
	set := bson.M{"requestStatus": to, "updatedAt": now}
	if payment != "" {
		set["paymentStatus"] = payment
	}
	return bson.M{"$set": set}
}

func (r *mongoBookingRepo) Find(ctx context.Context, f models.BookingFilter) ([]models.BookingRequest, error) {
	cur, err := r.col.Find(ctx, bookingQuery(f), options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.BookingRequest{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func bookingQuery(f models.BookingFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["userId"] = f.UserID
	}
	if f.CompanionID != "" {
		q["companionId"] = f.CompanionID
	}
	if f.Status != "" {
		q["requestStatus"] = f.Status
	}
	updated := bson.M{}
	if !f.UpdatedFrom.IsZero() {
		updated["$gte"] = f.UpdatedFrom
	}
	if !f.UpdatedBefore.IsZero() {
		updated["$lt"] = f.UpdatedBefore
	}
	if len(updated) > 0 {
		q["updatedAt"] = updated
	}
	return q
}
