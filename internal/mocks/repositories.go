package mocks

import (
	"context"
	"time"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, executor repositories.SQLExecutor, user *models.User) error {
	return m.Called(ctx, executor, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, executor repositories.SQLExecutor, user *models.User) error {
	return m.Called(ctx, executor, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, executor repositories.SQLExecutor, id string, at time.Time) error {
	return m.Called(ctx, executor, id, at).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, executor repositories.SQLExecutor, id string) error {
	return m.Called(ctx, executor, id).Error(0)
}

// MockSessionRepository is a mock implementation of repositories.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, executor repositories.SQLExecutor, category *models.Category) error {
	return m.Called(ctx, executor, category).Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, executor repositories.SQLExecutor, category *models.Category) error {
	return m.Called(ctx, executor, category).Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, executor repositories.SQLExecutor, id string) error {
	return m.Called(ctx, executor, id).Error(0)
}

func (m *MockCategoryRepository) CountMenuItems(ctx context.Context, categoryID string) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of repositories.MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) CreateMenuItem(ctx context.Context, executor repositories.SQLExecutor, item *models.MenuItem) error {
	return m.Called(ctx, executor, item).Error(0)
}

func (m *MockMenuItemRepository) UpdateMenuItem(ctx context.Context, executor repositories.SQLExecutor, item *models.MenuItem) error {
	return m.Called(ctx, executor, item).Error(0)
}

func (m *MockMenuItemRepository) DeleteMenuItem(ctx context.Context, executor repositories.SQLExecutor, id string) (*string, error) {
	args := m.Called(ctx, executor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockGalleryRepository is a mock implementation of repositories.GalleryRepository
type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) CreateGalleryImage(ctx context.Context, executor repositories.SQLExecutor, img *models.GalleryImage) error {
	return m.Called(ctx, executor, img).Error(0)
}

func (m *MockGalleryRepository) UpdateGalleryImage(ctx context.Context, executor repositories.SQLExecutor, img *models.GalleryImage) error {
	return m.Called(ctx, executor, img).Error(0)
}

func (m *MockGalleryRepository) DeleteGalleryImage(ctx context.Context, executor repositories.SQLExecutor, id string) (string, error) {
	args := m.Called(ctx, executor, id)
	return args.String(0), args.Error(1)
}

// MockBookingRepository is a mock implementation of repositories.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, executor repositories.SQLExecutor, booking *models.Booking) error {
	return m.Called(ctx, executor, booking).Error(0)
}

func (m *MockBookingRepository) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, executor repositories.SQLExecutor, booking *models.Booking) error {
	return m.Called(ctx, executor, booking).Error(0)
}

func (m *MockBookingRepository) DeleteBooking(ctx context.Context, executor repositories.SQLExecutor, id string) error {
	return m.Called(ctx, executor, id).Error(0)
}

// MockContactRepository is a mock implementation of repositories.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateContact(ctx context.Context, executor repositories.SQLExecutor, contact *models.Contact) error {
	return m.Called(ctx, executor, contact).Error(0)
}

// MockBlogRepository is a mock implementation of repositories.BlogRepository
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) GetPosts(ctx context.Context, filters models.BlogPostFilters) ([]models.BlogPost, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.BlogPost), args.Int(1), args.Error(2)
}

func (m *MockBlogRepository) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) ViewPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) CreatePost(ctx context.Context, executor repositories.SQLExecutor, post *models.BlogPost) error {
	return m.Called(ctx, executor, post).Error(0)
}

func (m *MockBlogRepository) UpdatePost(ctx context.Context, executor repositories.SQLExecutor, post *models.BlogPost) error {
	return m.Called(ctx, executor, post).Error(0)
}

func (m *MockBlogRepository) DeletePost(ctx context.Context, executor repositories.SQLExecutor, id string) error {
	return m.Called(ctx, executor, id).Error(0)
}

func (m *MockBlogRepository) GetPublishedSlugs(ctx context.Context) ([]repositories.SitemapEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.SitemapEntry), args.Error(1)
}

func (m *MockBlogRepository) GetCategories(ctx context.Context) ([]models.BlogCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogCategory), args.Error(1)
}

func (m *MockBlogRepository) GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogCategory), args.Error(1)
}

func (m *MockBlogRepository) CreateCategory(ctx context.Context, executor repositories.SQLExecutor, cat *models.BlogCategory) error {
	return m.Called(ctx, executor, cat).Error(0)
}

func (m *MockBlogRepository) UpdateCategory(ctx context.Context, executor repositories.SQLExecutor, cat *models.BlogCategory) error {
	return m.Called(ctx, executor, cat).Error(0)
}

func (m *MockBlogRepository) DeleteCategory(ctx context.Context, executor repositories.SQLExecutor, id string) error {
	return m.Called(ctx, executor, id).Error(0)
}

// MockStatsRepository is a mock implementation of repositories.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetSummary(ctx context.Context) (*models.StatsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSummary), args.Error(1)
}

var (
	_ repositories.UserRepository     = (*MockUserRepository)(nil)
	_ repositories.SessionRepository  = (*MockSessionRepository)(nil)
	_ repositories.CategoryRepository = (*MockCategoryRepository)(nil)
	_ repositories.MenuItemRepository = (*MockMenuItemRepository)(nil)
	_ repositories.GalleryRepository  = (*MockGalleryRepository)(nil)
	_ repositories.BookingRepository  = (*MockBookingRepository)(nil)
	_ repositories.ContactRepository  = (*MockContactRepository)(nil)
	_ repositories.BlogRepository     = (*MockBlogRepository)(nil)
	_ repositories.StatsRepository    = (*MockStatsRepository)(nil)
)
