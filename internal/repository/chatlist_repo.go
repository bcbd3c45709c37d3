package repository

import (
	"context"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatListRepository interface {
	Create(ctx context.Context, c *models.ChatList) error
	// Touch records the latest message of a conversation, creating the
	// summary on first use and adding the sender to the roster.
	Touch(ctx context.Context, requestID string, sender models.ChatParticipant, msg string, at time.Time) error
	ListByParticipant(ctx context.Context, userID string) ([]models.ChatList, error)
}

type mongoChatListRepo struct {
	col *mongo.Collection
}

func NewMongoChatListRepo(db *mongo.Database) ChatListRepository {
	col := db.Collection("chatlist")
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "requestid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "Users_array.id", Value: 1}, {Key: "Latest_msg_time", Value: -1}}},
	})
	return &mongoChatListRepo{col: col}
}

func (r *mongoChatListRepo) Create(ctx context.Context, c *models.ChatList) error {
	if c.CDt.IsZero() {
		c.CDt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, c)
	return duplicate(err)
}

func (r *mongoChatListRepo) Touch(ctx context.Context, requestID string, sender models.ChatParticipant, msg string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"requestid": requestID},
		bson.M{
			"$set":         bson.M{"LatestMsg": msg, "Latest_msg_time": at},
			"$setOnInsert": bson.M{"cDt": at, "Users_array": bson.A{sender}},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost the insert race; the summary exists now
			return r.Touch(ctx, requestID, sender, msg, at)
		}
		return err
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"requestid": requestID, "Users_array.id": bson.M{"$ne": sender.ID}},
		bson.M{"$push": bson.M{"Users_array": sender}},
	)
	return err
}

func (r *mongoChatListRepo) ListByParticipant(ctx context.Context, userID string) ([]models.ChatList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "Latest_msg_time", Value: -1}, {Key: "cDt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"Users_array.id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []models.ChatList{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
