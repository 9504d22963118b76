package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie marks the session cookie Secure.
func NewAuthHandler(as services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: as, secureCookie: secureCookie}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, expires time.Time) {
	maxAge := int(time.Until(expires).Seconds())
	if value == "" {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login handles user login and starts a cookie session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Login")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req, services.ClientMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogInfo("Failed login attempt", map[string]interface{}{"ip": c.ClientIP()})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid email or password.", ""))
			return
		}
		respondServiceError(c, err, "Login", "Failed to login.")
		return
	}

	h.setSessionCookie(c, result.Token, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

// Logout destroys the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)
	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, err, "Logout", "Failed to logout.")
		return
	}
	h.setSessionCookie(c, "", time.Unix(0, 0))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the user behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := c.Get(middleware.ContextUser)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user in context"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.(*models.User)})
}
