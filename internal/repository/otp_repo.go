package repository

import (
	"context"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OTPRepository interface {
	// Issue stores code as the pending OTP for mobile, overwriting any
	// previous one, and bumps the attempt counter.
	Issue(ctx context.Context, mobile string, role models.UserType, code string, issuedAtMs int64) (*models.LoginRecord, error)
	Find(ctx context.Context, mobile string) (*models.LoginRecord, error)
	// MarkVerified clears the pending code only if it still equals code.
	MarkVerified(ctx context.Context, mobile, code string) error
}

type mongoOTPRepo struct {
	col *mongo.Collection
}

func NewMongoOTPRepo(db *mongo.Database) OTPRepository {
	col := db.Collection("logins")
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "mobileNo", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoOTPRepo{col: col}
}

func (r *mongoOTPRepo) Issue(ctx context.Context, mobile string, role models.UserType, code string, issuedAtMs int64) (*models.LoginRecord, error) {
	update := bson.M{
		"$set": bson.M{
			"role":         role,
			"otp":          code,
			"timestamp":    issuedAtMs,
			"otp_verified": false,
		},
		"$inc": bson.M{"otp_count": 1},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var rec models.LoginRecord
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"mobileNo": mobile}, update, opts).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *mongoOTPRepo) Find(ctx context.Context, mobile string) (*models.LoginRecord, error) {
	var rec models.LoginRecord
	if err := r.col.FindOne(ctx, bson.M{"mobileNo": mobile}).Decode(&rec); err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *mongoOTPRepo) MarkVerified(ctx context.Context, mobile, code string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"mobileNo": mobile, "otp": code},
		bson.M{"$set": bson.M{"otp": nil, "otp_verified": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}
