package repository

import (
	"github.com/GaganMittal847/Companio/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const calendarCollection = "calenders"

type SellerQuery struct {
	Lat    float64
	Lng    float64
	Filter *models.SellerFilter
	SortBy models.SellerSort
	// MaxDistance is in metres; zero leaves the search uncapped.
	MaxDistance float64
	Limit       int64
}

var sellerProjection = bson.D{
	{Key: "_id", Value: 0},
	{Key: "id", Value: 1},
	{Key: "name", Value: 1},
	{Key: "profilePic", Value: 1},
	{Key: "bio", Value: 1},
	{Key: "gender", Value: 1},
	{Key: "catList", Value: 1},
	{Key: "subCatList", Value: 1},
	{Key: "fcmToken", Value: 1},
	{Key: "media", Value: 1},
	{Key: "rating", Value: 1},
	{Key: "geoLocation", Value: 1},
	{Key: "distance", Value: 1},
	{Key: "isLocked", Value: 1},
	{Key: "lockedUntil", Value: 1},
	{Key: "createdAt", Value: 1},
}

// SellerPipeline builds the discovery aggregation. $geoNear must be the
// first stage, so attribute filters ride along in its query.
func SellerPipeline(q SellerQuery) mongo.Pipeline {
	geoNear := bson.D{
		{Key: "near", Value: bson.D{
			{Key: "type", Value: "Point"},
			{Key: "coordinates", Value: bson.A{q.Lng, q.Lat}},
		}},
		{Key: "distanceField", Value: "distance"},
		{Key: "spherical", Value: true},
		{Key: "query", Value: sellerAttributeQuery(q.Filter)},
	}
	if q.MaxDistance > 0 {
		geoNear = append(geoNear, bson.E{Key: "maxDistance", Value: q.MaxDistance})
	}

	pipeline := mongo.Pipeline{{{Key: "$geoNear", Value: geoNear}}}

	joined := q.Filter.NeedsCalendar()
	if joined {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: calendarCollection},
				{Key: "localField", Value: "id"},
				{Key: "foreignField", Value: "sellerID"},
				{Key: "as", Value: "calendar"},
			}}},
			bson.D{{Key: "$unwind", Value: "$calendar"}},
			bson.D{{Key: "$match", Value: bson.M{
				"calendar.categories": bson.M{"$elemMatch": calendarEntryMatch(q.Filter)},
			}}},
		)
	}

	project := sellerProjection
	if joined {
		project = append(append(bson.D{}, sellerProjection...), bson.E{Key: "calendar", Value: 1})
	}

	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	return append(pipeline,
		bson.D{{Key: "$project", Value: project}},
		bson.D{{Key: "$sort", Value: sellerSort(q.SortBy)}},
		bson.D{{Key: "$limit", Value: limit}},
	)
}

func sellerAttributeQuery(f *models.SellerFilter) bson.M {
	query := bson.M{"type": models.UserTypeSeller}
	if f == nil {
		return query
	}
	if len(f.CatList) > 0 {
		query["catList.catId"] = bson.M{"$in": f.CatList}
	}
	if len(f.SubCatList) > 0 {
		query["subCatList.subCatId"] = bson.M{"$in": f.SubCatList}
	}
	if f.Gender != "" {
		query["gender"] = f.Gender
	}
	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}
	return query
}

// calendarEntryMatch matches a single calendar entry that satisfies the
// price range on either weekday or weekend price and has an available slot
// inside the date range.
func calendarEntryMatch(f *models.SellerFilter) bson.M {
	match := bson.M{}
	if len(f.CatList) > 0 {
		match["categoryID"] = bson.M{"$in": f.CatList}
	}
	if len(f.SubCatList) > 0 {
		match["subCategoryID"] = bson.M{"$in": f.SubCatList}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		rng := bson.M{}
		if f.MinPrice != nil {
			rng["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			rng["$lte"] = *f.MaxPrice
		}
		match["$or"] = bson.A{
			bson.M{"weekdayPrice": rng},
			bson.M{"weekendPrice": rng},
		}
	}

	if f.DateFrom != "" || f.DateTo != "" {
		dates := bson.M{}
		if f.DateFrom != "" {
			dates["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			dates["$lte"] = f.DateTo
		}
		match["availability.days"] = bson.M{"$elemMatch": bson.M{
			"date":                dates,
			"timeslots.available": true,
		}}
	}
	return match
}

func sellerSort(by models.SellerSort) bson.D {
	switch by {
	case models.SortNearest:
		return bson.D{{Key: "distance", Value: 1}}
	case models.SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "distance", Value: 1}}
	default:
		return bson.D{{Key: "rating", Value: -1}, {Key: "distance", Value: 1}}
	}
}
