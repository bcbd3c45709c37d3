package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/database"
	"github.com/GaganMittal847/Companio/internal/events"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
	"github.com/GaganMittal847/Companio/internal/utils"
	"go.uber.org/zap"
)

const compensationTimeout = 5 * time.Second

type BookingConfig struct {
	DefaultLock time.Duration
	Location    *time.Location
}

// AcceptResult is the accepted request together with the lock placed on
// the companion.
type AcceptResult struct {
	Request     *models.BookingRequest `json:"request"`
	CompanionID string                 `json:"companionId"`
	IsLocked    bool                   `json:"isLocked"`
	LockedAt    time.Time              `json:"lockedAt"`
	LockedUntil time.Time              `json:"lockedUntil"`
}

type bookingService struct {
	bookings      repository.BookingRepository
	users         repository.UserRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	tx            database.Transactor
	publisher     events.Publisher
	cfg           BookingConfig
	logger        *zap.SugaredLogger
	now           Clock
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	tx database.Transactor,
	publisher events.Publisher,
	cfg BookingConfig,
	logger *zap.SugaredLogger,
) BookingService {
	if cfg.DefaultLock <= 0 {
		cfg.DefaultLock = 6 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &bookingService{
		bookings:      bookings,
		users:         users,
		categories:    categories,
		subcategories: subcategories,
		tx:            tx,
		publisher:     publisher,
		cfg:           cfg,
		logger:        logger,
		now:           systemClock,
	}
}

func (s *bookingService) publish(ctx context.Context, typ, key string, payload any) {
	if err := s.publisher.Publish(ctx, events.New(typ, key, payload)); err != nil {
		s.logger.Warnw("event publish failed", "type", typ, "key", key, "error", err)
	}
}

func (s *bookingService) Create(ctx context.Context, req models.CreateBookingRequest) (*models.BookingRequest, error) {
	companion, missing, err := s.checkEntities(ctx, req)
	if err != nil {
		return nil, apperr.Internal("failed to create request", err)
	}
	if len(missing) > 0 {
		return nil, apperr.NotFound(strings.Join(missing, ", "))
	}

	b := &models.BookingRequest{
		Location:      models.BookingLocation{Latitude: *req.Location.Latitude, Longitude: *req.Location.Longitude},
		CatID:         req.CatID,
		SubCatID:      req.SubCatID,
		UserID:        req.UserID,
		UserName:      req.UserName,
		CompanionID:   req.CompanionID,
		Comments:      req.Comments,
		Price:         *req.Price,
		Date:          req.Date,
		Slots:         req.Slots,
		FinalPrice:    *req.FinalPrice,
		AddressID:     req.AddressID,
		Address:       req.Address,
		RequestStatus: models.StatusRequested,
	}
	if companion.GeoLocation.Valid() {
		m := utils.HaversineDistance(b.Location.Latitude, b.Location.Longitude, companion.GeoLocation.Lat(), companion.GeoLocation.Lng())
		km := utils.RoundTo(m/1000, 2)
		b.DistanceKm = &km
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, apperr.Internal("failed to create request", err)
	}
	s.publish(ctx, events.BookingRequested, b.ID.Hex(), b)
	return b, nil
}

// checkEntities returns the companion and a message per missing entity.
func (s *bookingService) checkEntities(ctx context.Context, req models.CreateBookingRequest) (*models.User, []string, error) {
	var missing []string

	buyer, err := s.users.FindByID(ctx, req.UserID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		missing = append(missing, "User does not exist")
	case err != nil:
		return nil, nil, err
	case buyer.Type != models.UserTypeBuyer:
		missing = append(missing, "User does not exist")
	}

	companion, err := s.users.FindByID(ctx, req.CompanionID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		missing = append(missing, "Companion does not exist")
	case err != nil:
		return nil, nil, err
	case companion.Type != models.UserTypeSeller:
		missing = append(missing, "Companion does not exist")
	}

	if _, err := s.categories.FindByCID(ctx, req.CatID); errors.Is(err, repository.ErrNotFound) {
		missing = append(missing, "Category does not exist")
	} else if err != nil {
		return nil, nil, err
	}

	if _, err := s.subcategories.FindBySCID(ctx, req.SubCatID); errors.Is(err, repository.ErrNotFound) {
		missing = append(missing, "Sub-category does not exist")
	} else if err != nil {
		return nil, nil, err
	}
	return companion, missing, nil
}

func (s *bookingService) Accept(ctx context.Context, requestID string) (*AcceptResult, error) {
	req, err := s.bookings.FindByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err, "Request not found")
	}
	if !req.RequestStatus.CanTransition(models.StatusSellerAccepted) {
		return nil, apperr.Conflict((&models.TransitionError{From: req.RequestStatus, To: models.StatusSellerAccepted}).Error())
	}
	companion, err := s.users.FindByID(ctx, req.CompanionID)
	if err != nil {
		return nil, storeErr(err, "Companion not found")
	}

	now := s.now()
	until := now.Add(LockDuration(req.Date, req.Slots, now, s.cfg.Location, s.cfg.DefaultLock))

	var (
		prev     models.LockState
		locked   bool
		stage    string
		accepted *models.BookingRequest
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		stage = "lock"
		p, err := s.users.AcquireLock(ctx, companion.ID, now, until)
		if err != nil {
			return err
		}
		prev, locked = p, true

		stage = "transition"
		accepted, err = s.bookings.Transition(ctx, requestID, models.Sources(models.StatusSellerAccepted), models.StatusSellerAccepted, models.PaymentPending)
		return err
	})
	if err != nil {
		if locked && !s.tx.Transactional() {
			s.restoreLock(ctx, companion.ID, requestID, prev)
		}
		if errors.Is(err, repository.ErrConflict) {
			if stage == "lock" {
				return nil, apperr.Conflict("Companion is already locked")
			}
			return nil, apperr.Conflict("Request is no longer awaiting a response")
		}
		return nil, storeErr(err, "Request not found")
	}

	s.logger.Infow("request accepted", "requestId", requestID, "companionId", companion.ID, "lockedUntil", until)
	res := &AcceptResult{
		Request:     accepted,
		CompanionID: companion.ID,
		IsLocked:    true,
		LockedAt:    now,
		LockedUntil: until,
	}
	s.publish(ctx, events.BookingAccepted, requestID, res)
	return res, nil
}

// restoreLock undoes a lock taken by a failed accept. It runs detached from
// ctx: the failure being compensated is often ctx's own deadline.
func (s *bookingService) restoreLock(ctx context.Context, companionID, requestID string, prev models.LockState) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()
	if err := s.users.RestoreLock(rctx, companionID, prev); err != nil {
		s.logger.Errorw("failed to release companion lock after failed accept",
			"companionId", companionID, "requestId", requestID, "error", err)
	}
}

func (s *bookingService) Reject(ctx context.Context, requestID string) (*models.BookingRequest, error) {
	req, err := s.bookings.FindByID(ctx, requestID)
	if err != nil {
		return nil, storeErr(err, "Request not found")
	}
	if !req.RequestStatus.CanTransition(models.StatusSellerRejected) {
		return nil, apperr.Conflict((&models.TransitionError{From: req.RequestStatus, To: models.StatusSellerRejected}).Error())
	}
	rejected, err := s.bookings.Transition(ctx, requestID, models.Sources(models.StatusSellerRejected), models.StatusSellerRejected, "")
	if errors.Is(err, repository.ErrConflict) {
		return nil, apperr.Conflict("Request is no longer awaiting a response")
	}
	if err != nil {
		return nil, storeErr(err, "Request not found")
	}
	s.publish(ctx, events.BookingRejected, requestID, rejected)
	return rejected, nil
}

func (s *bookingService) Query(ctx context.Context, req models.BookingQueryRequest) ([]models.BookingRequest, error) {
	if req.CompanionID == "" && req.UserID == "" {
		return nil, apperr.Validation("companionId or userId is required", nil)
	}
	f := models.BookingFilter{
		UserID:      req.UserID,
		CompanionID: req.CompanionID,
		Status:      req.Status,
	}
	applyBucket(&f, req.DateFilter, s.now(), s.cfg.Location)

	out, err := s.bookings.Find(ctx, f)
	if err != nil {
		return nil, apperr.Internal("failed to fetch requests", err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("No requests found")
	}
	return out, nil
}

// applyBucket bounds updatedAt to the calendar day buckets around now.
func applyBucket(f *models.BookingFilter, bucket models.DateBucket, now time.Time, loc *time.Location) {
	today := utils.StartOfDay(now, loc)
	tomorrow := today.AddDate(0, 0, 1)
	switch bucket {
	case models.BucketToday:
		f.UpdatedFrom, f.UpdatedBefore = today, tomorrow
	case models.BucketUpcoming:
		f.UpdatedFrom = tomorrow
	case models.BucketOverdue:
		f.UpdatedBefore = today
	}
}

func (s *bookingService) ListForBuyer(ctx context.Context, userID string) ([]models.BookingRequest, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found")
	}
	if u.Type != models.UserTypeBuyer {
		return nil, apperr.NotFound("User not found")
	}
	out, err := s.bookings.Find(ctx, models.BookingFilter{UserID: userID})
	if err != nil {
		return nil, apperr.Internal("failed to fetch user requests", err)
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("No requests found for this user")
	}
	return out, nil
}
