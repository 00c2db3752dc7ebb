package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	blockedRepo "arborbook/database/repository/blocked"
	bookingRepo "arborbook/database/repository/booking"
	"arborbook/services/booking"
	"arborbook/services/scheduling"
	"arborbook/utils"
)

// respondServiceError translates service-layer errors to HTTP. Business
// rejections become a 409 carrying the wire reason code; store faults become
// a 503 and are never reported as availability.
func respondServiceError(c *gin.Context, err error) {
	var rejection *booking.RejectionError
	if errors.As(err, &rejection) {
		payload := gin.H{"type": rejection.Code, "message": rejection.Message}
		if rejection.JobBookingID != "" {
			payload["jobBookingId"] = rejection.JobBookingID
		}
		c.JSON(http.StatusConflict, payload)
		return
	}

	var validation *booking.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}

	var transition *booking.TransitionError
	if errors.As(err, &transition) {
		c.JSON(http.StatusConflict, gin.H{"type": "invalid_transition", "message": transition.Error()})
		return
	}

	if errors.Is(err, bookingRepo.ErrNotFound) || errors.Is(err, blockedRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if errors.Is(err, scheduling.ErrStoreUnavailable) {
		utils.GetLogger().Sugar().Errorf("store unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"type": scheduling.ReasonStoreUnavailable, "message": "booking store unavailable"})
		return
	}

	utils.GetLogger().Sugar().Errorf("unhandled service error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
