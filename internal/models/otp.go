package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRecord holds the pending OTP for one mobile number. Timestamp is
// milliseconds since epoch.
type LoginRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MobileNo    string             `bson:"mobileNo" json:"mobileNo"`
	Role        UserType           `bson:"role,omitempty" json:"role,omitempty"`
	OTP         *string            `bson:"otp" json:"-"`
	Timestamp   int64              `bson:"timestamp" json:"timestamp"`
	OTPVerified bool               `bson:"otp_verified" json:"otp_verified"`
	OTPCount    int                `bson:"otp_count" json:"otp_count"`
}

func (r *LoginRecord) IssuedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

func (r *LoginRecord) Pending() bool {
	return r.OTP != nil && *r.OTP != ""
}
