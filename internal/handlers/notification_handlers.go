package handlers

import (
	"net/http"

	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the public contact and intake forms.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// Contact handles the contact form.
func (h *NotificationHandler) Contact(c *gin.Context) {
	var req services.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Contact")
		return
	}
	res, err := h.notificationService.SubmitContact(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Contact", "Failed to send message.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// BookTable handles the table reservation form.
func (h *NotificationHandler) BookTable(c *gin.Context) {
	var req services.TableBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "BookTable")
		return
	}
	res, err := h.notificationService.SubmitTableBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "BookTable", "Failed to submit reservation.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// CateringInquiry handles the catering inquiry form.
func (h *NotificationHandler) CateringInquiry(c *gin.Context) {
	var req services.CateringInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CateringInquiry")
		return
	}
	res, err := h.notificationService.SubmitCateringInquiry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CateringInquiry", "Failed to submit inquiry.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// CartBooking handles an order placed from the dish cart.
func (h *NotificationHandler) CartBooking(c *gin.Context) {
	var req services.CartBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CartBooking")
		return
	}
	res, err := h.notificationService.SubmitCartBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CartBooking", "Failed to submit order.")
		return
	}
	c.JSON(http.StatusOK, res)
}
