package handlers

import (
	"net/http"

	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BlogHandler serves the public blog and its admin management routes.
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(bs services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: bs}
}

func postFilters(c *gin.Context, publicOnly bool) models.BlogPostFilters {
	filters := models.BlogPostFilters{
		Page:         utils.StrToInt(c.Query("page"), 1),
		Limit:        utils.StrToInt(c.Query("limit"), services.DefaultPostsPerPage),
		CategorySlug: queryString(c, "category"),
		Search:       queryString(c, "search"),
		PublicOnly:   publicOnly,
	}
	if !publicOnly {
		filters.Status = queryString(c, "status")
	}
	return filters
}

// --- Public ---

// ListPublishedPosts handles the public, paginated post listing.
func (h *BlogHandler) ListPublishedPosts(c *gin.Context) {
	page, err := h.blogService.ListPosts(c.Request.Context(), postFilters(c, true))
	if err != nil {
		respondServiceError(c, err, "ListPublishedPosts", "Failed to fetch blog posts.")
		return
	}
	if page.Posts == nil {
		page.Posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, page)
}

// GetPublishedPost handles reading a published post by slug and counts the view.
func (h *BlogHandler) GetPublishedPost(c *gin.Context) {
	post, err := h.blogService.ReadPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceError(c, err, "GetPublishedPost", "Failed to fetch blog post.")
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetBlogCategories handles listing blog categories with their published post counts.
func (h *BlogHandler) GetBlogCategories(c *gin.Context) {
	categories, err := h.blogService.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetBlogCategories", "Failed to fetch blog categories.")
		return
	}
	if categories == nil {
		categories = []models.BlogCategory{}
	}
	c.JSON(http.StatusOK, categories)
}

// --- Admin posts ---

// ListPosts handles the admin post listing across every status.
func (h *BlogHandler) ListPosts(c *gin.Context) {
	page, err := h.blogService.ListPosts(c.Request.Context(), postFilters(c, false))
	if err != nil {
		respondServiceError(c, err, "ListPosts", "Failed to fetch blog posts.")
		return
	}
	if page.Posts == nil {
		page.Posts = []models.BlogPost{}
	}
	c.JSON(http.StatusOK, page)
}

// GetPost handles fetching any post by id.
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.blogService.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetPost", "Failed to fetch blog post.")
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost handles creating a post authored by the session user.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req services.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreatePost")
		return
	}

	post, err := h.blogService.CreatePost(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		respondServiceError(c, err, "CreatePost", "Failed to create blog post.")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost handles updating a post.
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	var req services.BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdatePost")
		return
	}

	post, err := h.blogService.UpdatePost(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdatePost", "Failed to update blog post.")
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost handles deleting a post.
func (h *BlogHandler) DeletePost(c *gin.Context) {
	if err := h.blogService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeletePost", "Failed to delete blog post.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog post deleted successfully"})
}

// --- Admin categories ---

// GetBlogCategoryByID handles fetching one blog category.
func (h *BlogHandler) GetBlogCategoryByID(c *gin.Context) {
	cat, err := h.blogService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetBlogCategoryByID", "Failed to fetch blog category.")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// CreateBlogCategory handles creating a blog category.
func (h *BlogHandler) CreateBlogCategory(c *gin.Context) {
	var req services.BlogCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateBlogCategory")
		return
	}

	cat, err := h.blogService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateBlogCategory", "Failed to create blog category.")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// UpdateBlogCategory handles updating a blog category.
func (h *BlogHandler) UpdateBlogCategory(c *gin.Context) {
	var req services.BlogCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateBlogCategory")
		return
	}

	cat, err := h.blogService.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateBlogCategory", "Failed to update blog category.")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DeleteBlogCategory handles deleting a blog category. Its posts become uncategorized.
func (h *BlogHandler) DeleteBlogCategory(c *gin.Context) {
	if err := h.blogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteBlogCategory", "Failed to delete blog category.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blog category deleted successfully"})
}
