package handlers

import (
	"net/http"

	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service. All routes are admin-only.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// GetUsers handles listing administrative users.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetUsers", "Failed to fetch users.")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID handles fetching a single user.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetUserByID", "Failed to fetch user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles creating a user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateUser")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateUser", "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser handles updating a user. An empty password leaves it unchanged.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateUser")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateUser", "Failed to update user.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles deleting a user other than the caller.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID := c.GetString(middleware.ContextUserID)
	if err := h.userService.DeleteUser(c.Request.Context(), actorID, c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteUser", "Failed to delete user.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
