package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAvailability serializes the availability index over [start, end].
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	idx, err := h.Service.GetAvailability(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": idx})
}
