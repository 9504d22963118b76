package mocks

import (
	"context"
	"mime/multipart"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of services.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req services.LoginRequest, meta services.ClientMeta) (*services.LoginResult, error) {
	args := m.Called(ctx, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, token string) (*models.Session, *models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Session), args.Get(1).(*models.User), args.Error(2)
}

// MockCategoryService is a mock implementation of services.CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, req services.CategoryRequest, image *multipart.FileHeader) (*models.Category, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, id string, req services.CategoryRequest, image *multipart.FileHeader) (*models.Category, error) {
	args := m.Called(ctx, id, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockMenuService is a mock implementation of services.MenuService
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) GetMenuItems(ctx context.Context, filters models.MenuItemFilters) ([]models.MenuItem, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuService) GetMenuItemByID(ctx context.Context, id string) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuService) CreateMenuItem(ctx context.Context, req services.MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error) {
	args := m.Called(ctx, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuService) UpdateMenuItem(ctx context.Context, id string, req services.MenuItemRequest, image *multipart.FileHeader) (*models.MenuItem, error) {
	args := m.Called(ctx, id, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuService) DeleteMenuItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockGalleryService is a mock implementation of services.GalleryService
type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) GetGalleryImages(ctx context.Context, filters models.GalleryFilters) ([]models.GalleryImage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) GetGalleryImageByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) UploadGalleryImages(ctx context.Context, req services.GalleryUploadRequest) ([]models.GalleryImage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) UpdateGalleryImage(ctx context.Context, id string, req services.GalleryUpdateRequest, image *multipart.FileHeader) (*models.GalleryImage, error) {
	args := m.Called(ctx, id, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryImage), args.Error(1)
}

func (m *MockGalleryService) DeleteGalleryImage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockUserService is a mock implementation of services.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req services.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, req services.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actorID, id string) error {
	return m.Called(ctx, actorID, id).Error(0)
}

// MockBookingService is a mock implementation of services.BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, req services.CreateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, id string, req services.UpdateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) DeleteBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockBlogService is a mock implementation of services.BlogService
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListPosts(ctx context.Context, filters models.BlogPostFilters) (*services.BlogPostPage, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BlogPostPage), args.Error(1)
}

func (m *MockBlogService) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) ReadPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) CreatePost(ctx context.Context, authorID string, req services.BlogPostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) UpdatePost(ctx context.Context, id string, req services.BlogPostRequest) (*models.BlogPost, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogPost), args.Error(1)
}

func (m *MockBlogService) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlogService) GetCategories(ctx context.Context) ([]models.BlogCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlogCategory), args.Error(1)
}

func (m *MockBlogService) GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogCategory), args.Error(1)
}

func (m *MockBlogService) CreateCategory(ctx context.Context, req services.BlogCategoryRequest) (*models.BlogCategory, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogCategory), args.Error(1)
}

func (m *MockBlogService) UpdateCategory(ctx context.Context, id string, req services.BlogCategoryRequest) (*models.BlogCategory, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogCategory), args.Error(1)
}

func (m *MockBlogService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockNotificationService is a mock implementation of services.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SubmitContact(ctx context.Context, req services.ContactRequest) (*services.NotificationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NotificationResult), args.Error(1)
}

func (m *MockNotificationService) SubmitTableBooking(ctx context.Context, req services.TableBookingRequest) (*services.NotificationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NotificationResult), args.Error(1)
}

func (m *MockNotificationService) SubmitCateringInquiry(ctx context.Context, req services.CateringInquiryRequest) (*services.NotificationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NotificationResult), args.Error(1)
}

func (m *MockNotificationService) SubmitCartBooking(ctx context.Context, req services.CartBookingRequest) (*services.NotificationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.NotificationResult), args.Error(1)
}

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetSummary(ctx context.Context) (*models.StatsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatsSummary), args.Error(1)
}

// MockSitemapService is a mock implementation of services.SitemapService
type MockSitemapService struct {
	mock.Mock
}

func (m *MockSitemapService) Generate(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockHealthService is a mock implementation of services.HealthService
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) *services.HealthReport {
	return m.Called(ctx).Get(0).(*services.HealthReport)
}

var (
	_ services.AuthService         = (*MockAuthService)(nil)
	_ services.CategoryService     = (*MockCategoryService)(nil)
	_ services.MenuService         = (*MockMenuService)(nil)
	_ services.GalleryService      = (*MockGalleryService)(nil)
	_ services.UserService         = (*MockUserService)(nil)
	_ services.BookingService      = (*MockBookingService)(nil)
	_ services.BlogService         = (*MockBlogService)(nil)
	_ services.NotificationService = (*MockNotificationService)(nil)
	_ services.StatsService        = (*MockStatsService)(nil)
	_ services.SitemapService      = (*MockSitemapService)(nil)
	_ services.HealthService       = (*MockHealthService)(nil)
)
