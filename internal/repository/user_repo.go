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

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string, typ models.UserType) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error)
	// AcquireLock locks the user until the given time unless an unexpired
	// lock is held, in which case ErrConflict is returned. The previous
	// lock state is returned for compensation.
	AcquireLock(ctx context.Context, id string, now, until time.Time) (models.LockState, error)
	RestoreLock(ctx context.Context, id string, prev models.LockState) error
	ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error)
	SearchSellers(ctx context.Context, q SellerQuery) ([]models.SellerResult, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	col := db.Collection("users")
	// indexes
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobileNo", Value: 1}, {Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "geoLocation", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "isLocked", Value: 1}, {Key: "lockedUntil", Value: 1}}},
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return duplicate(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ObjectID = oid
	}
	return nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// FindByMobile matches any user type when typ is empty.
func (r *mongoUserRepo) FindByMobile(ctx context.Context, mobile string, typ models.UserType) (*models.User, error) {
	filter := bson.M{"mobileNo": mobile}
	if typ != "" {
		filter["type"] = typ
	}
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) UpdateProfile(ctx context.Context, id string, p models.ProfileUpdate) (*models.User, error) {
	set := bson.M{
		"age":        p.Age,
		"gender":     p.Gender,
		"bio":        p.Bio,
		"profilePic": p.ProfilePic,
		"updatedAt":  time.Now().UTC(),
	}
	if p.GeoLocation.Valid() {
		set["geoLocation"] = p.GeoLocation
	}
	if p.CatList != nil {
		set["catList"] = p.CatList
	}
	if p.SubCatList != nil {
		set["subCatList"] = p.SubCatList
	}
	if p.Media != nil {
		set["media"] = p.Media
	}
	for k, v := range map[string]string{"pronoun": p.Pronoun, "work": p.Work, "language": p.Language} {
		if v != "" {
			set[k] = v
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) AcquireLock(ctx context.Context, id string, now, until time.Time) (models.LockState, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prev models.User
	err := r.col.FindOneAndUpdate(ctx, lockFilter(id, now), lockUpdate(now, until), opts).Decode(&prev)
	if err == nil {
		return prev.Lock(), nil
	}
	if err != mongo.ErrNoDocuments {
		return models.LockState{}, err
	}
	if _, ferr := r.FindByID(ctx, id); ferr != nil {
		return models.LockState{}, ferr
	}
	return models.LockState{}, ErrConflict
}

// lockFilter matches the user only while no unexpired lock is held.
func lockFilter(id string, now time.Time) bson.M {
	return bson.M{
		"id": id,
		"$or": bson.A{
			bson.M{"isLocked": bson.M{"$ne": true}},
			bson.M{"lockedUntil": bson.M{"$lte": now}},
		},
	}
}

func lockUpdate(now, until time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"isLocked":    true,
		"lockedAt":    now,
		"lockedUntil": until,
		"updatedAt":   now,
	}}
}

func (r *mongoUserRepo) RestoreLock(ctx context.Context, id string, prev models.LockState) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"isLocked":    prev.IsLocked,
		"lockedAt":    prev.LockedAt,
		"lockedUntil": prev.LockedUntil,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoUserRepo) ReleaseExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"isLocked": true, "lockedUntil": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"isLocked": false, "updatedAt": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *mongoUserRepo) SearchSellers(ctx context.Context, q SellerQuery) ([]models.SellerResult, error) {
	cur, err := r.col.Aggregate(ctx, SellerPipeline(q))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.SellerResult{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
