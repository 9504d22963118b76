package repositories_test

import (
	"context"
	"testing"
	"time"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/testdb"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCategoryDeleteBlockedByMenuItems(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	categories := repositories.NewCategoryRepository(db)
	items := repositories.NewMenuItemRepository(db)

	cat := &models.Category{Name: "Mains", Color: "#aa0000"}
	require.NoError(t, categories.CreateCategory(ctx, db, cat))
	require.NotEmpty(t, cat.ID)

	item := &models.MenuItem{Name: "Lasagne", Price: money("14.5"), CategoryID: &cat.ID, Available: true}
	require.NoError(t, items.CreateMenuItem(ctx, db, item))

	count, err := categories.CountMenuItems(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = categories.DeleteCategory(ctx, db, cat.ID)
	assert.ErrorIs(t, err, repositories.ErrForeignKey)

	got, err := items.GetMenuItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryName)
	assert.Equal(t, "Mains", *got.CategoryName)
	assert.Equal(t, "14.50", got.Price.StringFixed(2))

	_, err = items.DeleteMenuItem(ctx, db, item.ID)
	require.NoError(t, err)
	require.NoError(t, categories.DeleteCategory(ctx, db, cat.ID))

	_, err = categories.GetCategoryByID(ctx, cat.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMenuItemRejectsUnknownCategoryAndNegativePrice(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	items := repositories.NewMenuItemRepository(db)

	missing := uuid.NewString()
	err := items.CreateMenuItem(ctx, db, &models.MenuItem{Name: "Ghost", Price: money("1"), CategoryID: &missing})
	assert.ErrorIs(t, err, repositories.ErrForeignKey)

	err = items.CreateMenuItem(ctx, db, &models.MenuItem{Name: "Refund", Price: money("-1")})
	assert.ErrorIs(t, err, repositories.ErrDatabaseError)
}

func TestMenuItemFilters(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	items := repositories.NewMenuItemRepository(db)

	require.NoError(t, items.CreateMenuItem(ctx, db, &models.MenuItem{Name: "Soup", Price: money("5"), Available: true, Featured: true}))
	require.NoError(t, items.CreateMenuItem(ctx, db, &models.MenuItem{Name: "Stew", Price: money("9"), Available: false}))

	yes := true
	featured, err := items.GetMenuItems(ctx, models.MenuItemFilters{Featured: &yes})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Soup", featured[0].Name)

	all, err := items.GetMenuItems(ctx, models.MenuItemFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Stew", all[0].Name, "newest first")
}

func TestLookupWithMalformedIDIsNotFound(t *testing.T) {
	db := testdb.Setup(t)
	_, err := repositories.NewGalleryRepository(db).GetGalleryImageByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserEmailIsUniqueIgnoringCase(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	u := &models.User{FirstName: "Ada", LastName: "Cook", Email: "ada@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, users.CreateUser(ctx, db, u))

	dup := &models.User{FirstName: "Ada", LastName: "Dup", Email: "ADA@example.com", PasswordHash: "x", Role: models.RoleAdmin, IsActive: true}
	assert.ErrorIs(t, users.CreateUser(ctx, db, dup), repositories.ErrDuplicateKey)

	found, err := users.FindUserByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "x", found.PasswordHash)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, users.UpdateLastLogin(ctx, db, u.ID, now))
	found, err = users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.True(t, found.LastLogin.Equal(now))
}

func TestBlogSlugUniquenessAndViewCount(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	blog := repositories.NewBlogRepository(db)

	published := time.Now()
	post := &models.BlogPost{
		Title: "Fresh Basil Pesto", Slug: "fresh-basil-pesto", Content: "basil",
		Status: models.PostStatusPublished, ReadingTime: 1, Tags: []string{"sauce"}, PublishedAt: &published,
	}
	require.NoError(t, blog.CreatePost(ctx, db, post))

	dup := &models.BlogPost{Title: "Fresh Basil Pesto!", Slug: "fresh-basil-pesto", Content: "again", Status: models.PostStatusDraft, ReadingTime: 1}
	assert.ErrorIs(t, blog.CreatePost(ctx, db, dup), repositories.ErrDuplicateKey)

	first, err := blog.ViewPublishedPost(ctx, "fresh-basil-pesto")
	require.NoError(t, err)
	second, err := blog.ViewPublishedPost(ctx, "fresh-basil-pesto")
	require.NoError(t, err)
	assert.Equal(t, first.ViewCount+1, second.ViewCount)
	assert.Equal(t, []string{"sauce"}, second.Tags)

	stored, err := blog.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ViewCount)
}

func TestViewPublishedPostIgnoresDrafts(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	blog := repositories.NewBlogRepository(db)

	draft := &models.BlogPost{Title: "Soon", Slug: "soon", Content: "tbd", Status: models.PostStatusDraft, ReadingTime: 1}
	require.NoError(t, blog.CreatePost(ctx, db, draft))

	_, err := blog.ViewPublishedPost(ctx, "soon")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	stored, err := blog.GetPostByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.ViewCount)
}

func TestBlogListingPaginationAndCategoryCounts(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	blog := repositories.NewBlogRepository(db)

	cat := &models.BlogCategory{Name: "Recipes", Slug: "recipes", Color: "#00aa00"}
	require.NoError(t, blog.CreateCategory(ctx, db, cat))

	for i, status := range []string{models.PostStatusPublished, models.PostStatusPublished, models.PostStatusPublished, models.PostStatusDraft} {
		p := &models.BlogPost{
			Title: "Post", Slug: "post-" + string(rune('a'+i)), Content: "words",
			Status: status, ReadingTime: 1, CategoryID: &cat.ID,
		}
		if status == models.PostStatusPublished {
			at := time.Now().Add(time.Duration(i) * time.Minute)
			p.PublishedAt = &at
		}
		require.NoError(t, blog.CreatePost(ctx, db, p))
	}

	page, total, err := blog.GetPosts(ctx, models.BlogPostFilters{Page: 1, Limit: 2, PublicOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "post-c", page[0].Slug, "latest publication first")
	require.NotNil(t, page[0].CategorySlug)
	assert.Equal(t, "recipes", *page[0].CategorySlug)

	beyond, total, err := blog.GetPosts(ctx, models.BlogPostFilters{Page: 5, Limit: 2, PublicOnly: true})
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.Equal(t, 3, total)

	byCategory, _, err := blog.GetPosts(ctx, models.BlogPostFilters{Page: 1, Limit: 10, PublicOnly: true, CategorySlug: strPtr("nope")})
	require.NoError(t, err)
	assert.Empty(t, byCategory)

	categories, err := blog.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.NotNil(t, categories[0].PostCount)
	assert.Equal(t, 3, *categories[0].PostCount)

	entries, err := blog.GetPublishedSlugs(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Deleting the category keeps its posts.
	require.NoError(t, blog.DeleteCategory(ctx, db, cat.ID))
	_, total, err = blog.GetPosts(ctx, models.BlogPostFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestSessionsExpireAndPrune(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	sessions := repositories.NewSessionRepository(db)

	live := &models.Session{SID: uuid.NewString(), Data: models.SessionData{UserID: uuid.NewString(), Role: models.RoleAdmin}, Expire: time.Now().Add(time.Hour)}
	stale := &models.Session{SID: uuid.NewString(), Data: models.SessionData{UserID: uuid.NewString()}, Expire: time.Now().Add(-time.Hour)}
	require.NoError(t, sessions.CreateSession(ctx, live))
	require.NoError(t, sessions.CreateSession(ctx, stale))

	got, err := sessions.GetSession(ctx, live.SID)
	require.NoError(t, err)
	assert.Equal(t, live.Data.UserID, got.Data.UserID)
	assert.Equal(t, models.RoleAdmin, got.Data.Role)

	pruned, err := sessions.DeleteExpiredSessions(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	_, err = sessions.GetSession(ctx, stale.SID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, sessions.DeleteSession(ctx, live.SID))
	_, err = sessions.GetSession(ctx, live.SID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBookingLifecycle(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	bookings := repositories.NewBookingRepository(db)

	dishes := models.SelectedDishes{
		{Dish: "Paella", Quantity: 2, Price: money("12.5")},
		{Dish: "Samosa", Quantity: 3, Price: money("19.99")},
		{Dish: "Tea", Quantity: 3, Price: money("0.1")},
	}
	b := &models.Booking{
		CustomerName: "Sam", CustomerEmail: "sam@example.com", CustomerPhone: "555-0100",
		EventDate: "2026-12-24", SelectedDishes: dishes, TotalAmount: dishes.Total(),
	}
	require.NoError(t, bookings.CreateBooking(ctx, db, b))
	assert.Equal(t, "pending", b.Status)

	b.Status = string(models.BookingStatusConfirmed)
	require.NoError(t, bookings.UpdateBooking(ctx, db, b))

	got, err := bookings.GetBookingByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	require.Len(t, got.SelectedDishes, 3)
	assert.True(t, money("25").Equal(got.SelectedDishes[0].TotalPrice))
	assert.True(t, money("59.97").Equal(got.SelectedDishes[1].TotalPrice))
	assert.True(t, money("0.3").Equal(got.SelectedDishes[2].TotalPrice), got.SelectedDishes[2].TotalPrice.String())
	assert.Equal(t, "85.27", got.TotalAmount.StringFixed(2))

	var raw string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT selected_dishes::text FROM bookings WHERE id = $1", b.ID).Scan(&raw))
	assert.NotContains(t, raw, "0.30000000000000004")

	pending := "pending"
	list, err := bookings.GetBookings(ctx, models.BookingFilters{Status: &pending})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, bookings.DeleteBooking(ctx, db, b.ID))
	assert.ErrorIs(t, bookings.DeleteBooking(ctx, db, b.ID), repositories.ErrNotFound)
}

func TestGalleryInsertsRollBackTogether(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()
	gallery := repositories.NewGalleryRepository(db)

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, gallery.CreateGalleryImage(ctx, tx, &models.GalleryImage{ImagePath: "/uploads/gallery/x.jpg", Type: models.DefaultGalleryType}))
	}
	require.NoError(t, tx.Rollback())

	images, err := gallery.GetGalleryImages(ctx, models.GalleryFilters{})
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestStatsSummary(t *testing.T) {
	db := testdb.Setup(t)
	ctx := context.Background()

	require.NoError(t, repositories.NewCategoryRepository(db).CreateCategory(ctx, db, &models.Category{Name: "Drinks", Color: "#000000"}))
	require.NoError(t, repositories.NewContactRepository().CreateContact(ctx, db, &models.Contact{Name: "A", Email: "a@example.com", Message: "hi"}))

	summary, err := repositories.NewStatsRepository(db).GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Categories)
	assert.Equal(t, 0, summary.MenuItems)
	assert.Equal(t, 0, summary.Bookings)
}
