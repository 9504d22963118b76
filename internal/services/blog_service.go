package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/utils"
)

const (
	DefaultPostsPerPage = 10
	MaxPostsPerPage     = 50
)

var (
	ErrPostNotFound         = fmt.Errorf("%w: blog post not found", ErrNotFound)
	ErrBlogCategoryNotFound = fmt.Errorf("%w: blog category not found", ErrNotFound)
	ErrSlugExists           = fmt.Errorf("%w: a post with this slug already exists", ErrConflict)
	ErrBlogCategoryExists   = fmt.Errorf("%w: a blog category with this name or slug already exists", ErrConflict)
	ErrInvalidPostStatus    = fmt.Errorf("%w: status must be one of draft, published, archived", ErrValidation)
	ErrUnknownBlogCategory  = fmt.Errorf("%w: blog category does not exist", ErrValidation)
)

// --- Blog DTOs ---

type BlogPostRequest struct {
	Title          *string   `json:"title"`
	Slug           *string   `json:"slug"`
	Excerpt        *string   `json:"excerpt"`
	Content        *string   `json:"content"`
	FeaturedImage  *string   `json:"featured_image"`
	CategoryID     *string   `json:"category_id"`
	Status         *string   `json:"status"`
	SEOTitle       *string   `json:"seo_title"`
	SEODescription *string   `json:"seo_description"`
	SEOKeywords    *string   `json:"seo_keywords"`
	Tags           *[]string `json:"tags"`
}

type BlogCategoryRequest struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Color        *string `json:"color"`
	DisplayOrder *int    `json:"display_order"`
}

// BlogPostPage is one page of a post listing.
type BlogPostPage struct {
	Posts      []models.BlogPost `json:"posts"`
	Pagination models.Pagination `json:"pagination"`
}

// --- BlogService Interface ---
type BlogService interface {
	ListPosts(ctx context.Context, filters models.BlogPostFilters) (*BlogPostPage, error)
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	// ReadPublishedPost returns a published post by slug and counts the view.
	ReadPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, authorID string, req BlogPostRequest) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req BlogPostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error

	GetCategories(ctx context.Context) ([]models.BlogCategory, error)
	GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error)
	CreateCategory(ctx context.Context, req BlogCategoryRequest) (*models.BlogCategory, error)
	UpdateCategory(ctx context.Context, id string, req BlogCategoryRequest) (*models.BlogCategory, error)
	DeleteCategory(ctx context.Context, id string) error
}

type blogService struct {
	blogRepo repositories.BlogRepository
	db       *database.DB
	now      func() time.Time
}

// NewBlogService creates a new instance of BlogService.
func NewBlogService(repo repositories.BlogRepository, db *database.DB) BlogService {
	return &blogService{blogRepo: repo, db: db, now: time.Now}
}

func (s *blogService) ListPosts(ctx context.Context, filters models.BlogPostFilters) (*BlogPostPage, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = DefaultPostsPerPage
	}
	if filters.Limit > MaxPostsPerPage {
		filters.Limit = MaxPostsPerPage
	}
	if !filters.PublicOnly && filters.Status != nil && *filters.Status != "" && !models.IsValidPostStatus(*filters.Status) {
		return nil, ErrInvalidPostStatus
	}

	posts, total, err := s.blogRepo.GetPosts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog posts: %w", err)
	}
	return &BlogPostPage{Posts: posts, Pagination: models.NewPagination(filters.Page, filters.Limit, total)}, nil
}

func (s *blogService) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	p, err := s.blogRepo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return p, nil
}

func (s *blogService) ReadPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := s.blogRepo.ViewPublishedPost(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to read blog post: %w", err)
	}
	return p, nil
}

// applyPostRequest merges req into p and recomputes the derived fields.
// published_at is stamped on the first transition into published and never reset.
func (s *blogService) applyPostRequest(p *models.BlogPost, req BlogPostRequest) error {
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if p.Title == "" {
		return validationError("title is required")
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if utils.IsEmpty(p.Content) {
		return validationError("content is required")
	}

	switch {
	case req.Slug != nil && !utils.IsEmpty(*req.Slug):
		p.Slug = utils.Slugify(*req.Slug)
	case req.Title != nil:
		p.Slug = utils.Slugify(p.Title)
	}
	if p.Slug == "" {
		return validationError("title must contain at least one letter or digit")
	}

	if req.Status != nil {
		if !models.IsValidPostStatus(*req.Status) {
			return ErrInvalidPostStatus
		}
		p.Status = *req.Status
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := s.now()
		p.PublishedAt = &now
	}

	optional := []struct {
		src *string
		dst **string
	}{
		{req.Excerpt, &p.Excerpt},
		{req.FeaturedImage, &p.FeaturedImage},
		{req.SEOTitle, &p.SEOTitle},
		{req.SEODescription, &p.SEODescription},
		{req.SEOKeywords, &p.SEOKeywords},
	}
	for _, f := range optional {
		if f.src != nil {
			*f.dst = utils.NewNullString(*f.src)
		}
	}
	if req.CategoryID != nil {
		categoryID, err := optionalID("category_id", *req.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID = categoryID
	}
	if req.Tags != nil {
		tags := make([]string, 0, len(*req.Tags))
		for _, t := range *req.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		p.Tags = tags
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	p.ReadingTime = utils.ReadingTime(p.Content)
	return nil
}

func mapPostWriteError(err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return ErrSlugExists
	case errors.Is(err, repositories.ErrForeignKey):
		return ErrUnknownBlogCategory
	case errors.Is(err, repositories.ErrNotFound) && action == "update":
		return ErrPostNotFound
	}
	return fmt.Errorf("failed to %s blog post: %w", action, err)
}

func (s *blogService) CreatePost(ctx context.Context, authorID string, req BlogPostRequest) (*models.BlogPost, error) {
	p := &models.BlogPost{AuthorID: utils.NewNullString(authorID)}
	if err := s.applyPostRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.CreatePost(ctx, s.db, p); err != nil {
		return nil, mapPostWriteError(err, "create")
	}
	return s.reloadPost(ctx, p), nil
}

func (s *blogService) UpdatePost(ctx context.Context, id string, req BlogPostRequest) (*models.BlogPost, error) {
	p, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPostRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.UpdatePost(ctx, s.db, p); err != nil {
		return nil, mapPostWriteError(err, "update")
	}
	return s.reloadPost(ctx, p), nil
}

// reloadPost refreshes the joined category and author names after a write.
func (s *blogService) reloadPost(ctx context.Context, p *models.BlogPost) *models.BlogPost {
	fresh, err := s.blogRepo.GetPostByID(ctx, p.ID)
	if err != nil {
		utils.LogWarn(err, "Failed to reload blog post after write", map[string]interface{}{"id": p.ID})
		return p
	}
	return fresh
}

func (s *blogService) DeletePost(ctx context.Context, id string) error {
	if err := s.blogRepo.DeletePost(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return nil
}

// --- Blog categories ---

func (s *blogService) GetCategories(ctx context.Context) ([]models.BlogCategory, error) {
	categories, err := s.blogRepo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get blog categories: %w", err)
	}
	return categories, nil
}

func (s *blogService) GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error) {
	cat, err := s.blogRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get blog category: %w", err)
	}
	return cat, nil
}

func applyBlogCategoryRequest(cat *models.BlogCategory, req BlogCategoryRequest) error {
	if req.Name != nil {
		cat.Name = strings.TrimSpace(*req.Name)
		cat.Slug = utils.Slugify(cat.Name)
	}
	if cat.Name == "" {
		return validationError("name is required")
	}
	if req.Slug != nil && !utils.IsEmpty(*req.Slug) {
		cat.Slug = utils.Slugify(*req.Slug)
	}
	if cat.Slug == "" {
		return validationError("name must contain at least one letter or digit")
	}
	if req.Description != nil {
		cat.Description = utils.NewNullString(*req.Description)
	}
	if req.Color != nil {
		color := strings.TrimSpace(*req.Color)
		if color != "" && !hexColorRegex.MatchString(color) {
			return validationError("color must be a hex value like #a1b2c3")
		}
		cat.Color = color
	}
	if cat.Color == "" {
		cat.Color = defaultColor
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	return nil
}

func (s *blogService) CreateCategory(ctx context.Context, req BlogCategoryRequest) (*models.BlogCategory, error) {
	cat := &models.BlogCategory{}
	if err := applyBlogCategoryRequest(cat, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.CreateCategory(ctx, s.db, cat); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrBlogCategoryExists
		}
		return nil, fmt.Errorf("failed to create blog category: %w", err)
	}
	return cat, nil
}

func (s *blogService) UpdateCategory(ctx context.Context, id string, req BlogCategoryRequest) (*models.BlogCategory, error) {
	cat, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyBlogCategoryRequest(cat, req); err != nil {
		return nil, err
	}
	if err := s.blogRepo.UpdateCategory(ctx, s.db, cat); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrBlogCategoryExists
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrBlogCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update blog category: %w", err)
	}
	return cat, nil
}

func (s *blogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.blogRepo.DeleteCategory(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBlogCategoryNotFound
		}
		return fmt.Errorf("failed to delete blog category: %w", err)
	}
	return nil
}
