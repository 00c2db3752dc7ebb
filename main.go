// File: arborbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arborbook/config"
	"arborbook/cron"
	"arborbook/database"
	blockedRepo "arborbook/database/repository/blocked"
	bookingRepo "arborbook/database/repository/booking"
	schedulerRepo "arborbook/database/repository/scheduler"
	"arborbook/handlers"
	"arborbook/middleware"
	"arborbook/routes"
	"arborbook/services/booking"
	"arborbook/services/scheduling"
	"arborbook/utils"

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

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	blocked := blockedRepo.NewMongoBlockedRepo()
	scheduler := schedulerRepo.NewMongoSchedulerRepo()

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Bookings: bookings,
		Blocked:  blocked,
	}
	bookingService := &booking.DefaultBookingService{
		Bookings:  bookings,
		Blocked:   blocked,
		Scheduler: scheduler,
		Engine:    engine,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	routes.RegisterRoutes(router, bookingHandler)

	// Background archive sweeper and health monitor.
	cron.InitArchiveWorker(bookings)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
