package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	StatusRequested      RequestStatus = "REQUESTED"
	StatusSellerAccepted RequestStatus = "SELLER_ACCEPTED"
	StatusSellerRejected RequestStatus = "SELLER_REJECTED"
	StatusCompleted      RequestStatus = "COMPLETED"
	StatusCancelled      RequestStatus = "CANCELLED"
)

// transitions lists every legal move. COMPLETED and CANCELLED are modelled
// but nothing moves a request into them yet.
var transitions = map[RequestStatus][]RequestStatus{
	StatusRequested: {StatusSellerAccepted, StatusSellerRejected},
}

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusRequested, StatusSellerAccepted, StatusSellerRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Sources returns the statuses from which to is reachable.
func Sources(to RequestStatus) []RequestStatus {
	var out []RequestStatus
	for from, nexts := range transitions {
		for _, n := range nexts {
			if n == to {
				out = append(out, from)
			}
		}
	}
	return out
}

type TransitionError struct {
	From RequestStatus
	To   RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move request from %s to %s", e.From, e.To)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

type BookingLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Slot struct {
	StartTime string `bson:"startTime" json:"startTime" validate:"required"`
	EndTime   string `bson:"endTime" json:"endTime" validate:"required"`
}

type BookingRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"requestID"`
	Location      BookingLocation    `bson:"location" json:"location"`
	CatID         string             `bson:"catId" json:"catId"`
	SubCatID      string             `bson:"subCatId" json:"subCatId"`
	UserID        string             `bson:"userId" json:"userId"`
	UserName      string             `bson:"userName,omitempty" json:"userName,omitempty"`
	CompanionID   string             `bson:"companionId" json:"companionId"`
	Comments      string             `bson:"comments,omitempty" json:"comments,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	Date          string             `bson:"date" json:"date"`
	Slots         []Slot             `bson:"slots" json:"slots"`
	FinalPrice    float64            `bson:"finalPrice" json:"finalPrice"`
	AddressID     string             `bson:"addressId" json:"addressId"`
	Address       string             `bson:"address" json:"address"`
	DistanceKm    *float64           `bson:"distanceKm,omitempty" json:"distanceKm,omitempty"`
	RequestStatus RequestStatus      `bson:"requestStatus" json:"requestStatus"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DateBucket groups requests by their last update relative to today.
type DateBucket string

const (
	BucketToday    DateBucket = "today"
	BucketUpcoming DateBucket = "upcoming"
	BucketOverdue  DateBucket = "overdue"
)

type BookingFilter struct {
	UserID      string
	CompanionID string
	Status      RequestStatus
	// UpdatedFrom and UpdatedBefore bound updatedAt; zero means open.
	UpdatedFrom   time.Time
	UpdatedBefore time.Time
}
