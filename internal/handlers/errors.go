package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto the API error envelope.
// Internal failures are logged with op and never leak their text to the client.
func respondServiceError(c *gin.Context, err error, op, internalMsg string) {
	var inUse *services.CategoryInUseError
	switch {
	case errors.As(err, &inUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category is still used by menu items.", inUse.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error()))
	case errors.Is(err, services.ErrUploadFailed):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeUploadFailed, "Image upload failed", err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, notFoundMessage(err), ""))
	case errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, conflictMessage(err), err.Error()))
	case errors.Is(err, services.ErrUnauthenticated):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Forbidden", ""))
	case errors.Is(err, services.ErrDispatch):
		utils.LogError(err, op+": notification dispatch failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeDispatchFailed, "Failed to send your request. Please try again later.", ""))
	default:
		utils.LogError(err, op+": unexpected error")
		utils.RespondInternal(c, internalMsg)
	}
}

// notFoundMessage turns "not found: menu item not found" into "Menu item not found.".
func notFoundMessage(err error) string {
	return sentence(strings.TrimPrefix(err.Error(), services.ErrNotFound.Error()+": "))
}

func conflictMessage(err error) string {
	return sentence(strings.TrimPrefix(err.Error(), services.ErrConflict.Error()+": "))
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error, op string) {
	utils.LogDebug(op+": failed to bind request", map[string]interface{}{"error": err.Error()})
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload", err.Error()))
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// optionalFile returns the uploaded file for field, or nil when none was sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

// bindBody binds JSON or multipart form fields into req.
func bindBody(c *gin.Context, req interface{}) error {
	if isMultipart(c) {
		return c.ShouldBind(req)
	}
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(req)
}

// queryBool parses an optional boolean query parameter.
func queryBool(c *gin.Context, key string) (*bool, bool) {
	v, err := utils.StrToBoolPtr(c.Query(key))
	if err != nil {
		utils.RespondValidationFailed(c, key+" must be true or false")
		return nil, false
	}
	return v, true
}

// queryString returns a pointer to a non-empty query parameter.
func queryString(c *gin.Context, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}
