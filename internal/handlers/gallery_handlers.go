package handlers

import (
	"net/http"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GalleryHandler holds the gallery service.
type GalleryHandler struct {
	galleryService services.GalleryService
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(gs services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: gs}
}

// GetGalleryImages handles listing gallery images, optionally filtered by type and featured.
func (h *GalleryHandler) GetGalleryImages(c *gin.Context) {
	filters := models.GalleryFilters{Type: queryString(c, "type")}
	var ok bool
	if filters.Featured, ok = queryBool(c, "featured"); !ok {
		return
	}

	images, err := h.galleryService.GetGalleryImages(c.Request.Context(), filters)
	if err != nil {
		respondServiceError(c, err, "GetGalleryImages", "Failed to fetch gallery images.")
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}
	c.JSON(http.StatusOK, images)
}

// GetGalleryImageByID handles fetching one gallery image.
func (h *GalleryHandler) GetGalleryImageByID(c *gin.Context) {
	img, err := h.galleryService.GetGalleryImageByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetGalleryImageByID", "Failed to fetch gallery image.")
		return
	}
	c.JSON(http.StatusOK, img)
}

// formValues returns the values of key, accepting the "key[]" spelling too.
func formValues(values map[string][]string, key string) []string {
	if v, ok := values[key]; ok {
		return v
	}
	return values[key+"[]"]
}

// UploadGalleryImages handles a multipart batch upload of up to services.MaxGalleryBatch images.
func (h *GalleryHandler) UploadGalleryImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBindError(c, err, "UploadGalleryImages")
		return
	}

	featured, err := utils.StrToBoolPtr(c.PostForm("featured"))
	if err != nil {
		utils.RespondValidationFailed(c, "featured must be true or false")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["images[]"]
	}
	req := services.GalleryUploadRequest{
		Files:        files,
		Titles:       formValues(form.Value, "titles"),
		Descriptions: formValues(form.Value, "descriptions"),
		Type:         c.PostForm("type"),
		Featured:     featured != nil && *featured,
	}

	images, err := h.galleryService.UploadGalleryImages(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "UploadGalleryImages", "Failed to upload gallery images.")
		return
	}
	c.JSON(http.StatusCreated, images)
}

// UpdateGalleryImage handles editing a gallery image; an "image" file replaces the picture.
func (h *GalleryHandler) UpdateGalleryImage(c *gin.Context) {
	var req services.GalleryUpdateRequest
	if err := bindBody(c, &req); err != nil {
		respondBindError(c, err, "UpdateGalleryImage")
		return
	}
	image, err := optionalFile(c, "image")
	if err != nil {
		respondBindError(c, err, "UpdateGalleryImage")
		return
	}

	img, err := h.galleryService.UpdateGalleryImage(c.Request.Context(), c.Param("id"), req, image)
	if err != nil {
		respondServiceError(c, err, "UpdateGalleryImage", "Failed to update gallery image.")
		return
	}
	c.JSON(http.StatusOK, img)
}

// DeleteGalleryImage handles deleting a gallery image and its file.
func (h *GalleryHandler) DeleteGalleryImage(c *gin.Context) {
	if err := h.galleryService.DeleteGalleryImage(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteGalleryImage", "Failed to delete gallery image.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gallery image deleted successfully"})
}
