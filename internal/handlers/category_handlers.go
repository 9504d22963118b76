package handlers

import (
	"net/http"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the category service.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(cs services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: cs}
}

// GetCategories handles fetching all menu categories.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetCategories", "Failed to fetch categories.")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByID handles fetching a single category.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	cat, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetCategoryByID", "Failed to fetch category.")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// bindCategory reads the category fields and the optional image from JSON or multipart.
func bindCategory(c *gin.Context, op string) (services.CategoryRequest, bool) {
	var req services.CategoryRequest
	if err := bindBody(c, &req); err != nil {
		respondBindError(c, err, op)
		return req, false
	}
	return req, true
}

// CreateCategory handles the creation of a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req, ok := bindCategory(c, "CreateCategory")
	if !ok {
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		respondBindError(c, err, "CreateCategory")
		return
	}

	cat, err := h.categoryService.CreateCategory(c.Request.Context(), req, image)
	if err != nil {
		respondServiceError(c, err, "CreateCategory", "Failed to create category.")
		return
	}
	utils.LogInfo("Category created", map[string]interface{}{"id": cat.ID})
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles updating a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	req, ok := bindCategory(c, "UpdateCategory")
	if !ok {
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		respondBindError(c, err, "UpdateCategory")
		return
	}

	cat, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		respondServiceError(c, err, "UpdateCategory", "Failed to update category.")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory handles deleting a category. It is refused while menu items use it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteCategory", "Failed to delete category.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
