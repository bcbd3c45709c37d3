package models

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexString accepts a JSON string or number. Older clients send request
// ids and OTP codes as numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// OTP / signup / profile

type OTPRequest struct {
	Mobile string   `json:"mobile" validate:"required,numeric,len=10"`
	Role   UserType `json:"role" validate:"required,oneof=buyer seller"`
}

type OTPVerification struct {
	MobileNumber string     `json:"mobile_number" validate:"required,numeric,len=10"`
	OTP          FlexString `json:"otp" validate:"required"`
}

type SignupRequest struct {
	Name        string    `json:"name" validate:"required"`
	MobileNo    string    `json:"mobileNo" validate:"required,numeric,len=10"`
	Type        UserType  `json:"type" validate:"required,oneof=buyer seller"`
	ProfilePic  string    `json:"profilePic"`
	FcmToken    string    `json:"fcmToken"`
	DeviceType  string    `json:"deviceType"`
	GeoLocation *Location `json:"geoLocation" validate:"omitempty"`
}

type ProfileSetupRequest struct {
	UserID     string           `json:"userId" validate:"required"`
	Age        int              `json:"age" validate:"required,gt=0,lt=150"`
	Gender     Gender           `json:"gender" validate:"required,oneof=male female other"`
	ProfilePic string           `json:"profilePic" validate:"required"`
	Location   *Location        `json:"location" validate:"required"`
	Bio        string           `json:"bio" validate:"required"`
	CatList    []CategoryTag    `json:"catList" validate:"omitempty,dive"`
	SubCatList []SubCategoryTag `json:"subCatList" validate:"omitempty,dive"`
	Pronoun    string           `json:"pronoun"`
	Work       string           `json:"work"`
	Language   string           `json:"language"`
	Media      []string         `json:"media" validate:"omitempty,dive,required"`
}

// Calendar

type CalendarUpdateRequest struct {
	SellerName       string            `json:"sellerName" validate:"required"`
	UserID           string            `json:"userId" validate:"required"`
	CatID            string            `json:"catId" validate:"required"`
	SubCatID         string            `json:"subCatId" validate:"required"`
	WeekdayPrice     *float64          `json:"weekdayPrice" validate:"required,gte=0"`
	WeekendPrice     *float64          `json:"weekendPrice" validate:"required,gte=0"`
	WeekdayTimeSlots []TimeSlot        `json:"weekdayTimeSlots" validate:"omitempty,dive"`
	WeekendTimeSlots []TimeSlot        `json:"weekendTimeSlots" validate:"omitempty,dive"`
	Days             []AvailabilityDay `json:"days" validate:"omitempty,dive"`
}

// Discovery

type SellerSort string

const (
	SortHighestRating SellerSort = "highestRating"
	SortNearest       SellerSort = "nearest"
	SortNewest        SellerSort = "newest"
)

type SellerFilter struct {
	CatList    []string `json:"catList"`
	SubCatList []string `json:"subCatList"`
	Gender     Gender   `json:"gender" validate:"omitempty,oneof=male female other"`
	MinRating  *float64 `json:"minRating" validate:"omitempty,gte=0"`
	MinPrice   *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
	DateFrom   string   `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo     string   `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
}

// NeedsCalendar reports whether matching requires the calendar join.
func (f *SellerFilter) NeedsCalendar() bool {
	if f == nil {
		return false
	}
	return f.MinPrice != nil || f.MaxPrice != nil || f.DateFrom != "" || f.DateTo != ""
}

type SellerSearchRequest struct {
	Location *Location     `json:"location" validate:"required"`
	Filter   *SellerFilter `json:"filter" validate:"omitempty"`
	SortBy   SellerSort    `json:"sortBy" validate:"omitempty,oneof=highestRating nearest newest"`
}

// SellerResult is the projection discovery returns.
type SellerResult struct {
	ID          string           `bson:"id" json:"id"`
	Name        string           `bson:"name" json:"name"`
	ProfilePic  string           `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Bio         string           `bson:"bio,omitempty" json:"bio,omitempty"`
	Gender      Gender           `bson:"gender,omitempty" json:"gender,omitempty"`
	CatList     []CategoryTag    `bson:"catList,omitempty" json:"catList,omitempty"`
	SubCatList  []SubCategoryTag `bson:"subCatList,omitempty" json:"subCatList,omitempty"`
	FcmToken    string           `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	Media       []string         `bson:"media,omitempty" json:"media,omitempty"`
	Rating      float64          `bson:"rating" json:"rating"`
	GeoLocation *GeoPoint        `bson:"geoLocation,omitempty" json:"geoLocation,omitempty"`
	Distance    float64          `bson:"distance" json:"distance"`
	IsLocked    bool             `bson:"isLocked" json:"isLocked"`
	LockedUntil *time.Time       `bson:"lockedUntil,omitempty" json:"lockedUntil,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	Calendar    *Calendar        `bson:"calendar,omitempty" json:"calendar,omitempty"`
}

// Booking

type CreateBookingRequest struct {
	Location    *Location `json:"location" validate:"required"`
	CatID       string    `json:"catId" validate:"required"`
	SubCatID    string    `json:"subCatId" validate:"required"`
	UserID      string    `json:"userId" validate:"required"`
	UserName    string    `json:"userName"`
	CompanionID string    `json:"companionId" validate:"required"`
	Comments    string    `json:"comments"`
	Price       *float64  `json:"price" validate:"required,gte=0"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	Slots       []Slot    `json:"slots" validate:"required,min=1,dive"`
	FinalPrice  *float64  `json:"finalPrice" validate:"required,gte=0"`
	AddressID   string    `json:"addressId" validate:"required"`
	Address     string    `json:"address" validate:"required"`
}

type BookingQueryRequest struct {
	CompanionID string        `json:"companionId" validate:"required_without=UserID"`
	UserID      string        `json:"userId" validate:"required_without=CompanionID"`
	Status      RequestStatus `json:"status" validate:"omitempty,oneof=REQUESTED SELLER_ACCEPTED SELLER_REJECTED COMPLETED CANCELLED"`
	DateFilter  DateBucket    `json:"dateFilter" validate:"omitempty,oneof=today upcoming overdue"`
}

// Chat

type CreateMessageRequest struct {
	RequestID FlexString `json:"requestId" validate:"required"`
	Msg       string     `json:"msg" validate:"required"`
	UserID    string     `json:"userId" validate:"required"`
	UserName  string     `json:"userName" validate:"required"`
	URL       string     `json:"url" validate:"omitempty,url"`
}

type UpdateMessageRequest struct {
	Msg *string `json:"msg" validate:"required_without=URL"`
	URL *string `json:"url" validate:"omitempty,url"`
}

type CreateChatListRequest struct {
	RequestID FlexString        `json:"requestid" validate:"required"`
	Users     []ChatParticipant `json:"Users_array" validate:"required,min=1,dive"`
	LatestMsg string            `json:"LatestMsg"`
}

// Catalog

type CategoryRequest struct {
	CID  string `json:"cid" validate:"required"`
	Name string `json:"name" validate:"required"`
	CPic string `json:"cpic"`
}

type CategoryUpdateRequest struct {
	CID  string  `json:"cid" validate:"required"`
	Name *string `json:"name" validate:"omitempty,min=1"`
	CPic *string `json:"cpic"`
}

type CategoryDeleteRequest struct {
	CID string `json:"cid" validate:"required"`
}

type SubcategoryRequest struct {
	SCID       string `json:"scid" validate:"required"`
	Name       string `json:"name" validate:"required"`
	SCPic      string `json:"scpic"`
	CategoryID string `json:"categoryId" validate:"required"`
}

type SubcategoryUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	SCPic      *string `json:"scpic"`
	CategoryID *string `json:"categoryId" validate:"omitempty,min=1"`
}

// Address

type AddAddressRequest struct {
	UserID     string    `json:"userId" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	MobileNo   string    `json:"mobileNo" validate:"required"`
	Address    string    `json:"address" validate:"required"`
	City       string    `json:"city" validate:"required"`
	State      string    `json:"state" validate:"required"`
	PostalCode string    `json:"postalCode" validate:"required"`
	Country    string    `json:"country" validate:"required"`
	Location   *Location `json:"location" validate:"omitempty"`
}
