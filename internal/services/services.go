package services

import (
	"context"
	"errors"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/GaganMittal847/Companio/internal/repository"
)

// Clock returns the current time; tests pin it.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// OTPIssued is returned by GenerateOTP. OTP is only set when codes are
// exposed to the caller.
type OTPIssued struct {
	Mobile           string `json:"mobile"`
	OTP              string `json:"otp,omitempty"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
	Attempts         int    `json:"attempts"`
}

// AuthService covers OTP login, signup and profile management.
type AuthService interface {
	GenerateOTP(ctx context.Context, req models.OTPRequest) (*OTPIssued, error)
	VerifyOTP(ctx context.Context, req models.OTPVerification) (*models.User, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.User, error)
	SetupProfile(ctx context.Context, req models.ProfileSetupRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, req models.CategoryUpdateRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, cid string) error
	ListSubcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error)
	CreateSubcategory(ctx context.Context, req models.SubcategoryRequest) (*models.Subcategory, error)
	UpdateSubcategory(ctx context.Context, scid string, req models.SubcategoryUpdateRequest) (*models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, scid string) error
	ListBanners(ctx context.Context) ([]models.Banner, error)
}

type CalendarService interface {
	Upsert(ctx context.Context, req models.CalendarUpdateRequest) (*models.Calendar, error)
	Get(ctx context.Context, sellerID, catID, subCatID string) (*models.Calendar, error)
}

type DiscoveryService interface {
	Discover(ctx context.Context, req models.SellerSearchRequest) ([]models.SellerResult, error)
}

type BookingService interface {
	Create(ctx context.Context, req models.CreateBookingRequest) (*models.BookingRequest, error)
	Accept(ctx context.Context, requestID string) (*AcceptResult, error)
	Reject(ctx context.Context, requestID string) (*models.BookingRequest, error)
	Query(ctx context.Context, req models.BookingQueryRequest) ([]models.BookingRequest, error)
	ListForBuyer(ctx context.Context, userID string) ([]models.BookingRequest, error)
}

type ChatService interface {
	Append(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error)
	List(ctx context.Context, requestID string) ([]models.Message, error)
	Update(ctx context.Context, id string, req models.UpdateMessageRequest) (*models.Message, error)
	Delete(ctx context.Context, id string) error
	CreateChatList(ctx context.Context, req models.CreateChatListRequest) (*models.ChatList, error)
	ChatLists(ctx context.Context, userID string) ([]models.ChatList, error)
}

type AddressService interface {
	Add(ctx context.Context, req models.AddAddressRequest) (*models.Address, error)
	List(ctx context.Context, userID string) ([]models.Address, error)
}

// storeErr maps repository sentinels onto the error taxonomy. notFoundMsg
// is used for ErrNotFound.
func storeErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(notFoundMsg)
	case errors.Is(err, repository.ErrInvalidID):
		return apperr.Validation("invalid id", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("record already exists")
	case errors.Is(err, repository.ErrConflict):
		return apperr.Conflict("record was modified concurrently")
	default:
		return apperr.From(err)
	}
}

func ptr[T any](v T) *T { return &v }
