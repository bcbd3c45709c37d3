package repository

import (
	"testing"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMessagesByRequestSortsByCreationTime(t *testing.T) {
	filter, opts := messagesByRequest("42")
	assert.Equal(t, bson.M{"requestId": "42"}, filter)
	assert.Equal(t, bson.D{{Key: "cDt", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
}

func TestLockFilterRequiresNoActiveLock(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	want := bson.M{
		"id": "USER2",
		"$or": bson.A{
			bson.M{"isLocked": bson.M{"$ne": true}},
			bson.M{"lockedUntil": bson.M{"$lte": now}},
		},
	}
	assert.Equal(t, want, lockFilter("USER2", now))
}

func TestLockUpdate(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	until := now.Add(6 * time.Hour)
	assert.Equal(t, bson.M{"$set": bson.M{
		"isLocked":    true,
		"lockedAt":    now,
		"lockedUntil": until,
		"updatedAt":   now,
	}}, lockUpdate(now, until))
}

func TestTransitionFilterPinsSourceStates(t *testing.T) {
	id := primitive.NewObjectID()
	from := models.Sources(models.StatusSellerAccepted)
	assert.Equal(t, bson.M{
		"_id":           id,
		"requestStatus": bson.M{"$in": []models.RequestStatus{models.StatusRequested}},
	}, transitionFilter(id, from))
}

func TestTransitionUpdate(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	accepted := transitionUpdate(models.StatusSellerAccepted, models.PaymentPending, now)
	assert.Equal(t, bson.M{"$set": bson.M{
		"requestStatus": models.StatusSellerAccepted,
		"paymentStatus": models.PaymentPending,
		"updatedAt":     now,
	}}, accepted)

	rejected := transitionUpdate(models.StatusSellerRejected, "", now)
	assert.NotContains(t, rejected["$set"], "paymentStatus")
}
