package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
)

func (t UserType) Valid() bool {
	return t == UserTypeBuyer || t == UserTypeSeller
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type CategoryTag struct {
	CatID    string `bson:"catId" json:"catId" validate:"required"`
	CatName  string `bson:"catName" json:"catName"`
	CatImage string `bson:"catImage" json:"catImage"`
}

type SubCategoryTag struct {
	CatID       string `bson:"catId" json:"catId"`
	SubCatID    string `bson:"subCatId" json:"subCatId" validate:"required"`
	SubCatName  string `bson:"subCatName" json:"subCatName"`
	SubCatImage string `bson:"subCatImage" json:"subCatImage"`
}

// User is a buyer or seller profile. ID is the human readable USER<n>
// identifier every other collection references.
type User struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID          string             `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	MobileNo    string             `bson:"mobileNo" json:"mobileNo"`
	Type        UserType           `bson:"type" json:"type"`
	ProfilePic  string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	FcmToken    string             `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	DeviceType  string             `bson:"deviceType,omitempty" json:"deviceType,omitempty"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Age         int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender      Gender             `bson:"gender,omitempty" json:"gender,omitempty"`
	Pronoun     string             `bson:"pronoun,omitempty" json:"pronoun,omitempty"`
	Work        string             `bson:"work,omitempty" json:"work,omitempty"`
	Language    string             `bson:"language,omitempty" json:"language,omitempty"`
	Media       []string           `bson:"media,omitempty" json:"media,omitempty"`
	CatList     []CategoryTag      `bson:"catList,omitempty" json:"catList,omitempty"`
	SubCatList  []SubCategoryTag   `bson:"subCatList,omitempty" json:"subCatList,omitempty"`
	GeoLocation *GeoPoint          `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	IsLocked    bool               `bson:"isLocked" json:"isLocked"`
	LockedAt    *time.Time         `bson:"lockedAt" json:"lockedAt"`
	LockedUntil *time.Time         `bson:"lockedUntil" json:"lockedUntil"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LockState is the slice of a user that booking acceptance mutates.
type LockState struct {
	IsLocked    bool       `bson:"isLocked" json:"isLocked"`
	LockedAt    *time.Time `bson:"lockedAt" json:"lockedAt"`
	LockedUntil *time.Time `bson:"lockedUntil" json:"lockedUntil"`
}

func (u *User) Lock() LockState {
	return LockState{IsLocked: u.IsLocked, LockedAt: u.LockedAt, LockedUntil: u.LockedUntil}
}

// LockActive reports whether the user holds a lock that has not expired.
func (u *User) LockActive(now time.Time) bool {
	return u.IsLocked && u.LockedUntil != nil && u.LockedUntil.After(now)
}

// ProfileUpdate carries the fields profile setup is allowed to change.
type ProfileUpdate struct {
	Age         int
	Gender      Gender
	Bio         string
	ProfilePic  string
	GeoLocation *GeoPoint
	CatList     []CategoryTag
	SubCatList  []SubCategoryTag
	Pronoun     string
	Work        string
	Language    string
	Media       []string
}
