package models

import "time"

// Blog post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// IsValidPostStatus reports whether status is a known post status.
func IsValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// BlogCategory groups blog posts.
type BlogCategory struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Color        string    `json:"color" db:"color"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	PostCount    *int      `json:"post_count,omitempty"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// BlogPost is an article. ReadingTime, ViewCount and PublishedAt are derived.
type BlogPost struct {
	ID             string     `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Slug           string     `json:"slug" db:"slug"`
	Excerpt        *string    `json:"excerpt,omitempty" db:"excerpt"`
	Content        string     `json:"content" db:"content"`
	FeaturedImage  *string    `json:"featured_image,omitempty" db:"featured_image"`
	CategoryID     *string    `json:"category_id,omitempty" db:"category_id"`
	CategoryName   *string    `json:"category_name,omitempty"`
	CategorySlug   *string    `json:"category_slug,omitempty"`
	AuthorID       *string    `json:"author_id,omitempty" db:"author_id"`
	AuthorName     *string    `json:"author_name,omitempty"`
	Status         string     `json:"status" db:"status"`
	SEOTitle       *string    `json:"seo_title,omitempty" db:"seo_title"`
	SEODescription *string    `json:"seo_description,omitempty" db:"seo_description"`
	SEOKeywords    *string    `json:"seo_keywords,omitempty" db:"seo_keywords"`
	ViewCount      int        `json:"view_count" db:"view_count"`
	ReadingTime    int        `json:"reading_time" db:"reading_time"`
	Tags           []string   `json:"tags" db:"tags"`
	PublishedAt    *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// BlogPostFilters controls the blog list queries.
type BlogPostFilters struct {
	Page         int
	Limit        int
	CategorySlug *string
	Search       *string
	Status       *string // nil on public routes means published only
	PublicOnly   bool
}

// Pagination describes a page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes total pages for a page/limit pair.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
