package routes

import (
	"github.com/GaganMittal847/Companio/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Catalog  *handlers.CatalogHandler
	Calendar *handlers.CalendarHandler
	Seller   *handlers.SellerHandler
	Booking  *handlers.BookingHandler
	Chat     *handlers.ChatHandler
	Address  *handlers.AddressHandler
	Health   *handlers.HealthHandler
}

// Register mounts every route. otpLimit guards OTP issuance; metrics may be
// nil.
func Register(app *fiber.App, h Handlers, otpLimit fiber.Handler, metrics fiber.Handler) {
	if metrics != nil {
		app.Get("/metrics", metrics)
	}
	app.Get("/cms/health", h.Health.Health)

	ext := app.Group("/companio/external")
	ext.Post("/otp", otpLimit, h.Auth.GenerateOTP)
	ext.Post("/otp/verify", h.Auth.VerifyOTP)
	ext.Post("/signUp", h.Auth.Signup)
	ext.Post("/profileSetup", h.Auth.ProfileSetup)
	ext.Get("/users/:userId", h.Auth.GetUser)
	ext.Post("/updateCalender", h.Calendar.Update)
	ext.Get("/getSellerCalender", h.Calendar.Get)
	ext.Get("/getBanners", h.Catalog.ListBanners)

	cats := app.Group("/api/categories")
	cats.Post("/getCategories", h.Catalog.ListCategories)
	cats.Post("/createCategory", h.Catalog.CreateCategory)
	cats.Post("/updateCategory", h.Catalog.UpdateCategory)
	cats.Post("/deleteCategory", h.Catalog.DeleteCategory)

	subs := app.Group("/api/subCategories")
	subs.Get("/", h.Catalog.ListSubcategories)
	subs.Post("/create", h.Catalog.CreateSubcategory)
	subs.Put("/:scid", h.Catalog.UpdateSubcategory)
	subs.Delete("/:scid", h.Catalog.DeleteSubcategory)

	app.Post("/api/seller/getListOfSellers", h.Seller.ListSellers)

	booking := app.Group("/booking")
	booking.Post("/requestBooking", h.Booking.Create)
	booking.Post("/accept", h.Booking.Accept)
	booking.Post("/rejectRequest", h.Booking.Reject)
	booking.Post("/getUsersRequests", h.Booking.Query)
	booking.Get("/getRequests/:userId", h.Booking.ListForBuyer)

	chat := app.Group("/api/chat")
	chat.Post("/messages", h.Chat.CreateMessage)
	chat.Get("/messages/:requestId", h.Chat.ListMessages)
	chat.Put("/messages/:id", h.Chat.UpdateMessage)
	chat.Delete("/messages/:id", h.Chat.DeleteMessage)
	chat.Post("/chatList", h.Chat.CreateChatList)
	chat.Get("/chatList/:userId", h.Chat.ChatLists)

	addr := app.Group("/api/address")
	addr.Post("/add/Address", h.Address.Add)
	addr.Get("/get/Address", h.Address.List)
}
