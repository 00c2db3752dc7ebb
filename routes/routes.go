package routes

import (
	"net/http"
	"time"

	"arborbook/config"
	"arborbook/handlers"
	"arborbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.DashboardOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterCalendarRoutes(r, bh)
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", bh.CreateBooking)
		api.GET("", bh.ListBookings)
		api.GET("/:id", bh.GetBooking)
		api.POST("/:id/book-job", bh.BookJob)
		api.GET("/:id/candidate-dates", bh.CandidateDates)
		api.PATCH("/:id/status", bh.UpdateStatus)
		api.POST("/:id/cancel", bh.CancelBooking)
		api.PUT("/:id/quote", bh.AttachQuote)
		api.POST("/:id/archive", bh.ArchiveBooking)
		api.POST("/:id/unarchive", bh.UnarchiveBooking)
		api.DELETE("/:id", bh.DeleteBooking)
	}
}

// RegisterCalendarRoutes sets up availability and blocked-date endpoints.
func RegisterCalendarRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.GET("/api/availability", bh.GetAvailability)

	api := r.Group("/api/blocked-dates")
	{
		api.GET("", bh.ListBlockedDates)
		api.POST("", bh.BlockDate)
		api.POST("/weekend-override", bh.AllowWeekendDate)
		api.DELETE("/:date", bh.UnblockDate)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
