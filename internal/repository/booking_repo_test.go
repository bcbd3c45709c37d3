package repository

import (
	"testing"
	"time"

	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBookingQuery(t *testing.T) {
	from := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name string
		in   models.BookingFilter
		want bson.M
	}{
		{
			name: "companion only",
			in:   models.BookingFilter{CompanionID: "USER2"},
			want: bson.M{"companionId": "USER2"},
		},
		{
			name: "user with status and today bucket",
			in:   models.BookingFilter{UserID: "USER1", Status: models.StatusRequested, UpdatedFrom: from, UpdatedBefore: to},
			want: bson.M{
				"userId":        "USER1",
				"requestStatus": models.StatusRequested,
				"updatedAt":     bson.M{"$gte": from, "$lt": to},
			},
		},
		{
			name: "overdue is open below",
			in:   models.BookingFilter{UserID: "USER1", UpdatedBefore: from},
			want: bson.M{"userId": "USER1", "updatedAt": bson.M{"$lt": from}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bookingQuery(tt.in))
		})
	}
}

func TestObjectIDRejectsMalformed(t *testing.T) {
	_, err := objectID("not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}
