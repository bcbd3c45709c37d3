package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type authFixture struct {
	svc    *authService
	users  *fakeUsers
	otps   *fakeOTPs
	cache  *memCache
	sender *recordingSender
	clock  *fixedClock
}

func newAuthFixture(cfg AuthConfig) *authFixture {
	f := &authFixture{
		users:  newFakeUsers(),
		otps:   newFakeOTPs(),
		cache:  newMemCache(),
		sender: &recordingSender{},
		clock:  newClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)),
	}
	f.svc = NewAuthService(f.users, f.otps, NewUserIDGenerator(newFakeCounters()), f.cache, f.sender, cfg, nopLogger).(*authService)
	f.svc.now = f.clock.Now
	return f
}

func (f *authFixture) signup(t *testing.T, name, mobile string, typ models.UserType) *models.User {
	t.Helper()
	u, err := f.svc.Signup(context.Background(), models.SignupRequest{Name: name, MobileNo: mobile, Type: typ})
	require.NoError(t, err)
	return u
}

func TestSignupAssignsSequentialIDs(t *testing.T) {
	f := newAuthFixture(AuthConfig{})
	a := f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
	b := f.signup(t, "Bob", "9000000002", models.UserTypeSeller)
	c := f.signup(t, "Alice", "9000000001", models.UserTypeSeller)

	assert.Equal(t, "USER1", a.ID)
	assert.Equal(t, "USER2", b.ID)
	assert.Equal(t, "USER3", c.ID, "same number may register once per type")
}

func TestSignupRejectsDuplicate(t *testing.T) {
	f := newAuthFixture(AuthConfig{})
	f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)

	_, err := f.svc.Signup(context.Background(), models.SignupRequest{Name: "Alice again", MobileNo: "9000000001", Type: models.UserTypeBuyer})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Len(t, f.users.byID, 1)
}

func TestGenerateOTPRequiresUser(t *testing.T) {
	f := newAuthFixture(AuthConfig{ExposeOTP: true})
	_, err := f.svc.GenerateOTP(context.Background(), models.OTPRequest{Mobile: "9000000009", Role: models.UserTypeBuyer})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGenerateAndVerifyOTP(t *testing.T) {
	f := newAuthFixture(AuthConfig{ExposeOTP: true, OTPTTL: time.Minute})
	alice := f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
	ctx := context.Background()

	issued, err := f.svc.GenerateOTP(ctx, models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer})
	require.NoError(t, err)
	require.Len(t, issued.OTP, 4)
	assert.Equal(t, 1, issued.Attempts)
	assert.Equal(t, 60, issued.ExpiresInSeconds)
	require.Len(t, f.sender.sent, 1)

	// a second request overwrites the first code
	issued, err = f.svc.GenerateOTP(ctx, models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer})
	require.NoError(t, err)
	assert.Equal(t, 2, issued.Attempts)

	f.clock.Advance(30 * time.Second)
	u, err := f.svc.VerifyOTP(ctx, models.OTPVerification{MobileNumber: "9000000001", OTP: models.FlexString(issued.OTP)})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, alice.ID, u.ID)

	rec := f.otps.recs["9000000001"]
	assert.Nil(t, rec.OTP)
	assert.True(t, rec.OTPVerified)

	// the code is single use
	_, err = f.svc.VerifyOTP(ctx, models.OTPVerification{MobileNumber: "9000000001", OTP: models.FlexString(issued.OTP)})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestVerifyOTPFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("no record", func(t *testing.T) {
		f := newAuthFixture(AuthConfig{})
		_, err := f.svc.VerifyOTP(ctx, models.OTPVerification{MobileNumber: "9000000001", OTP: "1234"})
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("expired after a minute", func(t *testing.T) {
		f := newAuthFixture(AuthConfig{ExposeOTP: true, OTPTTL: time.Minute})
		f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
		issued, err := f.svc.GenerateOTP(ctx, models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer})
		require.NoError(t, err)

		f.clock.Advance(60 * time.Second)
		_, err = f.svc.VerifyOTP(ctx, models.OTPVerification{MobileNumber: "9000000001", OTP: models.FlexString(issued.OTP)})
		var ae *apperr.Error
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, apperr.KindValidation, ae.Kind)
		assert.Equal(t, "OTP time limit exceeded", ae.Message)
		assert.NotNil(t, f.otps.recs["9000000001"].OTP, "failed verification keeps the code")
	})

	t.Run("mismatch", func(t *testing.T) {
		f := newAuthFixture(AuthConfig{ExposeOTP: true, OTPTTL: time.Minute})
		f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
		issued, err := f.svc.GenerateOTP(ctx, models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer})
		require.NoError(t, err)

		wrong := "0000"
		if issued.OTP == wrong {
			wrong = "1111"
		}
		_, err = f.svc.VerifyOTP(ctx, models.OTPVerification{MobileNumber: "9000000001", OTP: models.FlexString(wrong)})
		var ae *apperr.Error
		require.True(t, errors.As(err, &ae))
		assert.Equal(t, "Invalid OTP", ae.Message)
		assert.Equal(t, issued.OTP, *f.otps.recs["9000000001"].OTP)
	})
}

func TestGenerateOTPRateLimit(t *testing.T) {
	f := newAuthFixture(AuthConfig{OTPRateLimitPerHour: 2})
	f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
	req := models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		issued, err := f.svc.GenerateOTP(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, issued.OTP, "codes are hidden unless exposed")
	}
	_, err := f.svc.GenerateOTP(ctx, req)
	assert.True(t, apperr.IsKind(err, apperr.KindRateLimited))
	assert.Equal(t, int64(2), f.cache.counts[otpRateLimitPrefix+"9000000001"])
}

func TestGenerateOTPRateLimitLogsRollbackFailure(t *testing.T) {
	f := newAuthFixture(AuthConfig{OTPRateLimitPerHour: 1})
	core, logs := observer.New(zap.WarnLevel)
	f.svc.logger = zap.New(core).Sugar()
	f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)
	req := models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer}
	ctx := context.Background()

	_, err := f.svc.GenerateOTP(ctx, req)
	require.NoError(t, err)

	f.cache.decrErr = errors.New("redis: connection reset")
	_, err = f.svc.GenerateOTP(ctx, req)
	assert.True(t, apperr.IsKind(err, apperr.KindRateLimited))
	require.Equal(t, 1, logs.FilterMessage("otp rate limit rollback failed").Len())
}

func TestGenerateOTPDeliveryFailure(t *testing.T) {
	f := newAuthFixture(AuthConfig{})
	f.sender.err = errors.New("provider down")
	f.signup(t, "Alice", "9000000001", models.UserTypeBuyer)

	_, err := f.svc.GenerateOTP(context.Background(), models.OTPRequest{Mobile: "9000000001", Role: models.UserTypeBuyer})
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}

func TestSetupProfile(t *testing.T) {
	f := newAuthFixture(AuthConfig{})
	bob := f.signup(t, "Bob", "9000000002", models.UserTypeSeller)
	lat, lng := 28.61, 77.20

	u, err := f.svc.SetupProfile(context.Background(), models.ProfileSetupRequest{
		UserID:     bob.ID,
		Age:        29,
		Gender:     models.GenderMale,
		ProfilePic: "https://cdn.example.com/bob.jpg",
		Location:   &models.Location{Latitude: &lat, Longitude: &lng},
		Bio:        "City walks",
		CatList:    []models.CategoryTag{{CatID: "C1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 29, u.Age)
	require.True(t, u.GeoLocation.Valid())
	assert.Equal(t, []float64{lng, lat}, u.GeoLocation.Coordinates)

	_, err = f.svc.SetupProfile(context.Background(), models.ProfileSetupRequest{UserID: "USER99"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
