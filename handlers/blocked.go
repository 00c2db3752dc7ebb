package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListBlockedDates returns blocked-date records over [start, end].
func (h *BookingHandler) ListBlockedDates(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query parameters are required"})
		return
	}

	blocks, err := h.Service.ListBlockedDates(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedDates": blocks})
}

// BlockDate places a manual full-day block.
func (h *BookingHandler) BlockDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.BlockDate(c.Request.Context(), input.Date, input.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blockedDate": block})
}

// AllowWeekendDate writes the explicit weekend override marker.
func (h *BookingHandler) AllowWeekendDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Service.AllowWeekendDate(c.Request.Context(), input.Date, input.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blockedDate": block})
}

// UnblockDate removes a manual block or weekend override from a date.
func (h *BookingHandler) UnblockDate(c *gin.Context) {
	if err := h.Service.UnblockDate(c.Request.Context(), c.Param("date")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unblocked": true})
}
