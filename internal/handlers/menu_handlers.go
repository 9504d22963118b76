package handlers

import (
	"net/http"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetMenuItems handles fetching menu items, optionally filtered by category_id, available and featured.
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	filters := models.MenuItemFilters{CategoryID: queryString(c, "category_id")}
	var ok bool
	if filters.Available, ok = queryBool(c, "available"); !ok {
		return
	}
	if filters.Featured, ok = queryBool(c, "featured"); !ok {
		return
	}

	items, err := h.menuService.GetMenuItems(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetMenuItems", "Failed to fetch menu items.")
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// GetMenuItemByID handles fetching a single menu item.
func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	item, err := h.menuService.GetMenuItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetMenuItemByID", "Failed to fetch menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem handles creating a menu item from multipart (with optional image) or JSON.
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := bindBody(c, &req); err != nil {
		respondBindError(c, err, "CreateMenuItem")
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		respondBindError(c, err, "CreateMenuItem")
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), req, image)
	if err != nil {
		respondServiceError(c, err, "CreateMenuItem", "Failed to create menu item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles updating a menu item. A new image replaces the old file.
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := bindBody(c, &req); err != nil {
		respondBindError(c, err, "UpdateMenuItem")
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		respondBindError(c, err, "UpdateMenuItem")
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		respondServiceError(c, err, "UpdateMenuItem", "Failed to update menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles deleting a menu item and its image.
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteMenuItem", "Failed to delete menu item.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}
