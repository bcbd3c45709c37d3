package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TimeSlot struct {
	StartTime string `bson:"startTime" json:"startTime" validate:"required"`
	EndTime   string `bson:"endTime" json:"endTime" validate:"required"`
	Available bool   `bson:"available" json:"available"`
}

type AvailabilityDay struct {
	Date      string     `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Timeslots []TimeSlot `bson:"timeslots" json:"timeslots" validate:"dive"`
}

type Availability struct {
	Days []AvailabilityDay `bson:"days" json:"days"`
}

// CalendarEntry is the pricing and availability of one seller for one
// (category, subcategory) pair.
type CalendarEntry struct {
	CategoryID    string       `bson:"categoryID" json:"categoryID"`
	SubCategoryID string       `bson:"subCategoryID" json:"subCategoryID"`
	WeekdayPrice  float64      `bson:"weekdayPrice" json:"weekdayPrice"`
	WeekendPrice  float64      `bson:"weekendPrice" json:"weekendPrice"`
	Availability  Availability `bson:"availability" json:"availability"`
}

type Calendar struct {
	ObjectID   primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SellerID   string             `bson:"sellerID" json:"sellerID"`
	Name       string             `bson:"name" json:"name"`
	Categories []CalendarEntry    `bson:"categories" json:"categories"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Entries returns the entries matching catID and subCatID; empty filters
// match everything.
func (c *Calendar) Entries(catID, subCatID string) []CalendarEntry {
	out := make([]CalendarEntry, 0, len(c.Categories))
	for _, e := range c.Categories {
		if catID != "" && e.CategoryID != catID {
			continue
		}
		if subCatID != "" && e.SubCategoryID != subCatID {
			continue
		}
		out = append(out, e)
	}
	return out
}
