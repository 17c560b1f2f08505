// File: lagocruise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lagocruise/config"
	"lagocruise/cron"
	"lagocruise/database"
	boatRepoPkg "lagocruise/database/repository/boat"
	bookingRepoPkg "lagocruise/database/repository/booking"
	userRepoPkg "lagocruise/database/repository/user"
	"lagocruise/handlers"
	"lagocruise/middleware"
	"lagocruise/routes"
	"lagocruise/services/booking"
	"lagocruise/services/notification"
	"lagocruise/services/payment"
	"lagocruise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	boatRepo := boatRepoPkg.NewMongoBoatRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// External collaborators. The gateway is constructed once here and
	// injected everywhere it is needed.
	gateway := payment.NewPaystackClient(
		config.AppConfig.PaystackBaseURL,
		config.AppConfig.PaystackSecretKey,
	)

	mailer, err := notification.NewSMTPSender(logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mailer: %v", err)
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:            bookingRepo,
		BoatRepo:        boatRepo,
		UserRepo:        userRepo,
		Gateway:         gateway,
		Mailer:          mailer,
		Logger:          logger,
		CallbackBaseURL: config.AppConfig.FrontendURL,
	}

	// handlers + routes.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	boatHandler := handlers.NewBoatHandler(boatRepo, utils.GetCacheClient(), logger)
	webhookHandler := handlers.NewWebhookHandler(gateway, bookingService, logger)

	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterBoatRoutes(router, boatHandler)
	routes.RegisterWebhookRoutes(router, webhookHandler)

	// Background lifecycle sweeps.
	cron.InitSweepWorker(bookingService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
