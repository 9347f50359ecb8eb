package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pankaj377/swap-bite-find-sub000/internal/api/handlers"
	"github.com/pankaj377/swap-bite-find-sub000/internal/middleware"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ListingHandler handlers.ListingHandler
	RequestHandler handlers.RequestHandler
	ChatHandler    handlers.ChatHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Listings()
	c.Requests()
	c.Chats()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Listings() {
	listings := c.App.Group("/api/v1/listings")

	// Browsing stays open so neighbours can look before signing up.
	listings.Get("/nearby", c.ListingHandler.GetNearbyListings)

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	listings.Get("/mine", auth, c.ListingHandler.GetMyListings)
	listings.Post("", auth, c.ListingHandler.CreateListing)
	listings.Post("/image", auth, c.ListingHandler.UploadListingImage)
	listings.Get("/:id", c.ListingHandler.GetListingDetails)
	listings.Put("/:id", auth, c.ListingHandler.UpdateListing)
	listings.Delete("/:id", auth, c.ListingHandler.DeleteListing)
}

func (c *Config) Requests() {
	requests := c.App.Group("/api/v1/requests", c.Middleware.AuthMiddleware(c.JWTService))

	requests.Post("", c.RequestHandler.CreateRequest)
	requests.Get("/incoming", c.RequestHandler.GetIncomingRequests)
	requests.Get("/outgoing", c.RequestHandler.GetOutgoingRequests)
	requests.Post("/respond", c.RequestHandler.RespondToRequest)
	requests.Post("/complete", c.RequestHandler.CompletePickup)
	requests.Delete("/:id", c.RequestHandler.CancelRequest)
}

func (c *Config) Chats() {
	chats := c.App.Group("/api/v1/chats", c.Middleware.AuthMiddleware(c.JWTService))

	chats.Post("", c.ChatHandler.OpenChat)
	chats.Get("", c.ChatHandler.GetUserChats)
	chats.Get("/:id", c.ChatHandler.GetChatDetails)
	chats.Post("/messages", c.ChatHandler.SendMessage)
	chats.Patch("/:id/read", c.ChatHandler.MarkMessagesAsRead)
	chats.Patch("/:id/close", c.ChatHandler.CloseChat)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
