package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pankaj377/swap-bite-find-sub000/cmd/config"
	migration "github.com/pankaj377/swap-bite-find-sub000/cmd/database/migrate"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils"
	"github.com/pankaj377/swap-bite-find-sub000/internal/utils/storage"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/listing"
	"github.com/pankaj377/swap-bite-find-sub000/pkg/sweeper"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to set up app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Expired listings are purged in the background for as long as the
	// server runs.
	sw := sweeper.NewSweeper(listing.NewListingRepository(db), storage.NewAwsS3(), sweepInterval())
	go sw.Start(ctx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
		_ = app.Shutdown()
	}()

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func sweepInterval() time.Duration {
	raw := utils.GetConfig("SWEEP_INTERVAL_MINUTES")
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return sweeper.DefaultInterval
	}
	return time.Duration(minutes) * time.Minute
}
