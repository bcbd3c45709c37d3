package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	MobileNo    string             `bson:"mobileNo" json:"mobileNo"`
	Address     string             `bson:"address" json:"address"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	PostalCode  string             `bson:"postalCode" json:"postalCode"`
	Country     string             `bson:"country" json:"country"`
	GeoLocation *GeoPoint          `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
