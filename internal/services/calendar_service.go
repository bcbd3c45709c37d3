package services

import (
	"context"
	"strings"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"github.com/GaganMittal847/Companio/internal/utils"
	"go.uber.org/zap"
)

type calendarService struct {
	calendars repository.CalendarRepository
	users     repository.UserRepository
	logger    *zap.SugaredLogger
	now       Clock
}

func NewCalendarService(calendars repository.CalendarRepository, users repository.UserRepository, logger *zap.SugaredLogger) CalendarService {
	return &calendarService{calendars: calendars, users: users, logger: logger, now: systemClock}
}

func (s *calendarService) Upsert(ctx context.Context, req models.CalendarUpdateRequest) (*models.Calendar, error) {
	seller, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, storeErr(err, "Seller not found")
	}
	if seller.Type != models.UserTypeSeller {
		return nil, apperr.Validation("userId does not belong to a seller", nil)
	}

	entry := models.CalendarEntry{
		CategoryID:    req.CatID,
		SubCategoryID: req.SubCatID,
		WeekdayPrice:  *req.WeekdayPrice,
		WeekendPrice:  *req.WeekendPrice,
		Availability:  models.Availability{Days: availabilityDays(req, s.now().Format(utils.DateLayout))},
	}

	name := strings.TrimSpace(req.SellerName)
	cal, err := s.calendars.UpsertEntry(ctx, req.UserID, name, entry)
	if err != nil {
		return nil, apperr.Internal("failed to update calendar", err)
	}
	return cal, nil
}

// availabilityDays uses the explicit days when given, otherwise today with
// every weekday and weekend slot open.
func availabilityDays(req models.CalendarUpdateRequest, today string) []models.AvailabilityDay {
	if len(req.Days) > 0 {
		return req.Days
	}
	slots := make([]models.TimeSlot, 0, len(req.WeekdayTimeSlots)+len(req.WeekendTimeSlots))
	for _, group := range [][]models.TimeSlot{req.WeekdayTimeSlots, req.WeekendTimeSlots} {
		for _, sl := range group {
			slots = append(slots, models.TimeSlot{StartTime: sl.StartTime, EndTime: sl.EndTime, Available: true})
		}
	}
	return []models.AvailabilityDay{{Date: today, Timeslots: slots}}
}

func (s *calendarService) Get(ctx context.Context, sellerID, catID, subCatID string) (*models.Calendar, error) {
	cal, err := s.calendars.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, storeErr(err, "Calendar not found")
	}
	if catID == "" && subCatID == "" {
		return cal, nil
	}
	entries := cal.Entries(catID, subCatID)
	if len(entries) == 0 {
		return nil, apperr.NotFound("Calendar not found")
	}
	cal.Categories = entries
	return cal, nil
}
