package handlers

import (
	"net/http"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// CreateBooking handles the creation of a new booking. Public; status is always pending.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateBooking")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateBooking", "Failed to create booking.")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookings handles fetching bookings, optionally filtered by status.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	var filters models.BookingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, err, "GetBookings")
		return
	}

	bookings, err := h.bookingService.GetBookings(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetBookings", "Failed to fetch bookings.")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID handles fetching a single booking.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetBookingByID", "Failed to fetch booking.")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking handles updating a booking, including its status.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateBooking")
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateBooking", "Failed to update booking.")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles deleting a booking.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.bookingService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteBooking", "Failed to delete booking.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
