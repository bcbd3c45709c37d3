package services

import (
	"context"
	"testing"
	"time"

	"github.com/GaganMittal847/Companio/internal/database"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Alice books Bob for a future date and Bob accepts.
func TestBuyerBooksSellerEndToEnd(t *testing.T) {
	ctx := context.Background()
	clock := newClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	users := newFakeUsers()
	categories := newFakeCategories("C1")
	subcategories := newFakeSubcategories(models.Subcategory{SCID: "S1", CategoryID: "C1"})
	calendars := newFakeCalendars()
	bookings := newFakeBookings()
	publisher := &recordingPublisher{}

	auth := NewAuthService(users, newFakeOTPs(), NewUserIDGenerator(newFakeCounters()), newMemCache(), &recordingSender{}, AuthConfig{}, nopLogger).(*authService)
	auth.now = clock.Now
	cal := NewCalendarService(calendars, users, nopLogger).(*calendarService)
	cal.now = clock.Now
	booking := NewBookingService(bookings, users, categories, subcategories, database.NoTx{}, publisher,
		BookingConfig{DefaultLock: 6 * time.Hour, Location: time.UTC}, nopLogger).(*bookingService)
	booking.now = clock.Now

	alice, err := auth.Signup(ctx, models.SignupRequest{Name: "Alice", MobileNo: "9000000001", Type: models.UserTypeBuyer})
	require.NoError(t, err)
	bob, err := auth.Signup(ctx, models.SignupRequest{Name: "Bob", MobileNo: "9000000002", Type: models.UserTypeSeller})
	require.NoError(t, err)

	_, err = cal.Upsert(ctx, models.CalendarUpdateRequest{
		SellerName:       "Bob",
		UserID:           bob.ID,
		CatID:            "C1",
		SubCatID:         "S1",
		WeekdayPrice:     ptr(400.0),
		WeekendPrice:     ptr(600.0),
		WeekdayTimeSlots: []models.TimeSlot{{StartTime: "10:00", EndTime: "12:00"}},
	})
	require.NoError(t, err)

	req := bookingRequest("2026-03-21")
	req.UserID, req.CompanionID = alice.ID, bob.ID
	created, err := booking.Create(ctx, req)
	require.NoError(t, err)

	res, err := booking.Accept(ctx, created.ID.Hex())
	require.NoError(t, err)

	lockedBob, err := auth.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, lockedBob.IsLocked)
	require.NotNil(t, lockedBob.LockedUntil)
	assert.Equal(t, clock.Now().Add(6*time.Hour), *lockedBob.LockedUntil)

	stored, err := bookings.FindByID(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusSellerAccepted, stored.RequestStatus)
	assert.Equal(t, models.StatusSellerAccepted, res.Request.RequestStatus)
}
