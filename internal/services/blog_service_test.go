package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"restaurant_backend/internal/mocks"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBlogService(now time.Time) (services.BlogService, *mocks.MockBlogRepository) {
	repo := new(mocks.MockBlogRepository)
	svc := services.NewBlogService(repo, nil)
	services.SetClock(svc, func() time.Time { return now })
	return svc, repo
}

func TestCreatePost(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("derives slug and reading time", func(t *testing.T) {
		svc, repo := newBlogService(now)
		content := strings.Repeat("word ", 450)

		var saved *models.BlogPost
		repo.On("CreatePost", mock.Anything, mock.Anything, mock.AnythingOfType("*models.BlogPost")).
			Run(func(args mock.Arguments) {
				saved = args.Get(2).(*models.BlogPost)
				saved.ID = "p-1"
			}).Return(nil)
		repo.On("GetPostByID", mock.Anything, "p-1").Return(nil, repositories.ErrDatabaseError)

		post, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title:   strPtr("Fresh Basil Pesto!"),
			Content: strPtr(content),
			Tags:    &[]string{"herbs", " ", "sauces"},
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh-basil-pesto", post.Slug)
		assert.Equal(t, 3, post.ReadingTime)
		assert.Equal(t, models.PostStatusDraft, post.Status)
		assert.Nil(t, post.PublishedAt)
		assert.Equal(t, []string{"herbs", "sauces"}, post.Tags)
		require.NotNil(t, saved.AuthorID)
		assert.Equal(t, "u-1", *saved.AuthorID)
	})

	t.Run("publishing stamps published_at", func(t *testing.T) {
		svc, repo := newBlogService(now)
		repo.On("CreatePost", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPostByID", mock.Anything, mock.Anything).Return(nil, repositories.ErrNotFound)

		post, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title: strPtr("Opening Night"), Content: strPtr("We open soon."), Status: strPtr(models.PostStatusPublished),
		})
		require.NoError(t, err)
		require.NotNil(t, post.PublishedAt)
		assert.True(t, post.PublishedAt.Equal(now))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		svc, repo := newBlogService(now)
		repo.On("CreatePost", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

		_, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title: strPtr("Fresh Basil Pesto"), Content: strPtr("Green."),
		})
		assert.ErrorIs(t, err, services.ErrSlugExists)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("malformed category id", func(t *testing.T) {
		svc, repo := newBlogService(now)

		_, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title: strPtr("Spring Menu"), Content: strPtr("New dishes."), CategoryID: strPtr("abc"),
		})
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.NotErrorIs(t, err, services.ErrNotFound)
		repo.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, repo := newBlogService(now)
		repo.On("CreatePost", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrForeignKey)

		_, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title: strPtr("Spring Menu"), Content: strPtr("New dishes."), CategoryID: strPtr("0e9c4c8a-6f0b-4d5e-8a1f-3c2b1a0d9e8f"),
		})
		assert.ErrorIs(t, err, services.ErrUnknownBlogCategory)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _ := newBlogService(now)
		_, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{
			Title: strPtr("Hello"), Content: strPtr("x"), Status: strPtr("live"),
		})
		assert.ErrorIs(t, err, services.ErrInvalidPostStatus)
	})

	t.Run("missing content", func(t *testing.T) {
		svc, _ := newBlogService(now)
		_, err := svc.CreatePost(context.Background(), "u-1", services.BlogPostRequest{Title: strPtr("Hello")})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestUpdatePostKeepsFirstPublishDate(t *testing.T) {
	firstPublished := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	svc, repo := newBlogService(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))

	repo.On("GetPostByID", mock.Anything, "p-1").Return(&models.BlogPost{
		ID: "p-1", Title: "Opening Night", Slug: "opening-night", Content: "We open soon.",
		Status: models.PostStatusArchived, PublishedAt: &firstPublished,
	}, nil)
	repo.On("UpdatePost", mock.Anything, mock.Anything, mock.MatchedBy(func(p *models.BlogPost) bool {
		return p.Status == models.PostStatusPublished && p.PublishedAt.Equal(firstPublished) && p.Slug == "opening-night"
	})).Return(nil)

	_, err := svc.UpdatePost(context.Background(), "p-1", services.BlogPostRequest{Status: strPtr(models.PostStatusPublished)})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListPostsClampsPaging(t *testing.T) {
	svc, repo := newBlogService(time.Now())
	repo.On("GetPosts", mock.Anything, mock.MatchedBy(func(f models.BlogPostFilters) bool {
		return f.Page == 1 && f.Limit == services.MaxPostsPerPage && f.PublicOnly
	})).Return([]models.BlogPost{{ID: "p-1"}}, 51, nil)

	page, err := svc.ListPosts(context.Background(), models.BlogPostFilters{Page: -3, Limit: 500, PublicOnly: true})
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, 51, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestReadPublishedPostNotFound(t *testing.T) {
	svc, repo := newBlogService(time.Now())
	repo.On("ViewPublishedPost", mock.Anything, "draft-post").Return(nil, repositories.ErrNotFound)

	_, err := svc.ReadPublishedPost(context.Background(), "draft-post")
	assert.ErrorIs(t, err, services.ErrPostNotFound)
}

func TestBlogCategories(t *testing.T) {
	t.Run("slug from name", func(t *testing.T) {
		svc, repo := newBlogService(time.Now())
		repo.On("CreateCategory", mock.Anything, mock.Anything, mock.MatchedBy(func(c *models.BlogCategory) bool {
			return c.Slug == "chefs-notes" && c.Color == "#000000"
		})).Return(nil)

		cat, err := svc.CreateCategory(context.Background(), services.BlogCategoryRequest{Name: strPtr("Chef's Notes")})
		require.NoError(t, err)
		assert.Equal(t, "Chef's Notes", cat.Name)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc, repo := newBlogService(time.Now())
		repo.On("CreateCategory", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrDuplicateKey)

		_, err := svc.CreateCategory(context.Background(), services.BlogCategoryRequest{Name: strPtr("Recipes")})
		assert.ErrorIs(t, err, services.ErrBlogCategoryExists)
	})
}
