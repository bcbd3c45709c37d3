package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/cache"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"github.com/GaganMittal847/Companio/internal/sms"
	"github.com/GaganMittal847/Companio/internal/utils"
	"go.uber.org/zap"
)

const (
	otpLength          = 4
	otpRateLimitPrefix = "otp_rate_limit:"
)

type AuthConfig struct {
	ExposeOTP           bool
	OTPTTL              time.Duration
	OTPRateLimitPerHour int
}

type authService struct {
	users  repository.UserRepository
	otps   repository.OTPRepository
	ids    *IDGenerator
	cache  cache.Cache
	sms    sms.Sender
	cfg    AuthConfig
	logger *zap.SugaredLogger
	now    Clock
}

func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	ids *IDGenerator,
	c cache.Cache,
	sender sms.Sender,
	cfg AuthConfig,
	logger *zap.SugaredLogger,
) AuthService {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = time.Minute
	}
	return &authService{
		users:  users,
		otps:   otps,
		ids:    ids,
		cache:  c,
		sms:    sender,
		cfg:    cfg,
		logger: logger,
		now:    systemClock,
	}
}

func (s *authService) GenerateOTP(ctx context.Context, req models.OTPRequest) (*OTPIssued, error) {
	// 1. Only registered numbers may request a code
	if _, err := s.users.FindByMobile(ctx, req.Mobile, req.Role); err != nil {
		return nil, storeErr(err, "User not found")
	}

	// 2. Hourly limit per number
	if s.cfg.OTPRateLimitPerHour > 0 {
		key := otpRateLimitPrefix + req.Mobile
		count, err := s.cache.Incr(ctx, key, time.Hour)
		if err != nil {
			s.logger.Warnw("otp rate limit unavailable", "error", err)
		} else if count > int64(s.cfg.OTPRateLimitPerHour) {
			if err := s.cache.Decr(ctx, key); err != nil {
				s.logger.Warnw("otp rate limit rollback failed", "key", key, "error", err)
			}
			return nil, apperr.RateLimited("too many OTP requests, please try again later")
		}
	}

	// 3. Store the code, replacing any pending one
	code := utils.GenerateOTP(otpLength)
	rec, err := s.otps.Issue(ctx, req.Mobile, req.Role, code, s.now().UnixMilli())
	if err != nil {
		return nil, apperr.Internal("failed to generate OTP", err)
	}

	// 4. Deliver
	body := fmt.Sprintf("Your Companio verification code is %s", code)
	if err := s.sms.Send(ctx, req.Mobile, body); err != nil {
		s.logger.Errorw("otp delivery failed", "error", err)
		if !s.cfg.ExposeOTP {
			return nil, apperr.Internal("failed to deliver OTP", err)
		}
	}

	out := &OTPIssued{
		Mobile:           req.Mobile,
		ExpiresInSeconds: int(s.cfg.OTPTTL / time.Second),
		Attempts:         rec.OTPCount,
	}
	if s.cfg.ExposeOTP {
		out.OTP = code
	}
	return out, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req models.OTPVerification) (*models.User, error) {
	rec, err := s.otps.Find(ctx, req.MobileNumber)
	if err != nil {
		return nil, storeErr(err, "OTP not found")
	}
	if !rec.Pending() {
		return nil, apperr.NotFound("OTP not found")
	}
	if s.now().Sub(rec.IssuedAt()) >= s.cfg.OTPTTL {
		return nil, apperr.Validation("OTP time limit exceeded", nil)
	}
	code := strings.TrimSpace(req.OTP.String())
	if code != *rec.OTP {
		return nil, apperr.Validation("Invalid OTP", nil)
	}

	if err := s.otps.MarkVerified(ctx, req.MobileNumber, code); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// consumed by a concurrent verification
			return nil, apperr.NotFound("OTP not found")
		}
		return nil, apperr.Internal("failed to verify OTP", err)
	}

	user, err := s.users.FindByMobile(ctx, req.MobileNumber, rec.Role)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

func (s *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	_, err := s.users.FindByMobile(ctx, req.MobileNo, req.Type)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal("failed to check existing user", err)
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to allocate user id", err)
	}

	u := &models.User{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		MobileNo:   req.MobileNo,
		Type:       req.Type,
		ProfilePic: req.ProfilePic,
		FcmToken:   req.FcmToken,
		DeviceType: req.DeviceType,
	}
	if req.GeoLocation != nil {
		u.GeoLocation = req.GeoLocation.Point()
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}
	s.logger.Infow("user signed up", "id", u.ID, "type", u.Type)
	return u, nil
}

func (s *authService) SetupProfile(ctx context.Context, req models.ProfileSetupRequest) (*models.User, error) {
	upd := models.ProfileUpdate{
		Age:        req.Age,
		Gender:     req.Gender,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
		CatList:    req.CatList,
		SubCatList: req.SubCatList,
		Pronoun:    req.Pronoun,
		Work:       req.Work,
		Language:   req.Language,
		Media:      req.Media,
	}
	if req.Location != nil {
		upd.GeoLocation = req.Location.Point()
	}
	u, err := s.users.UpdateProfile(ctx, req.UserID, upd)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return u, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	return u, nil
}
