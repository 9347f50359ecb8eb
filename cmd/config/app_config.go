package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"github.com/pankaj377/swap-bite-find-sub000/internal/api/handlers"
	"github.com/pankaj377/swap-bite-find-sub000/internal/api/routes"
	"github.com/pankaj377/swap-bite-find-sub000/internal/middleware"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/storage"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/chat"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/jwt"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/request"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	listingRepository := listing.NewListingRepository(db)
	requestRepository := request.NewRequestRepository(db)
	chatRepository := chat.NewChatRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	listingService := listing.NewListingService(listingRepository, s3)
	requestService := request.NewRequestService(requestRepository, listingRepository)
	chatService := chat.NewChatService(chatRepository, listingRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	listingHandler := handlers.NewListingHandler(listingService, validator)
	requestHandler := handlers.NewRequestHandler(requestService, validator)
	chatHandler := handlers.NewChatHandler(chatService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ListingHandler: listingHandler,
		RequestHandler: requestHandler,
		ChatHandler:    chatHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
