package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/mocks"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/router"
	"restaurant_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	auth         *mocks.MockAuthService
	categories   *mocks.MockCategoryService
	menu         *mocks.MockMenuService
	gallery      *mocks.MockGalleryService
	users        *mocks.MockUserService
	bookings     *mocks.MockBookingService
	blog         *mocks.MockBlogService
	notification *mocks.MockNotificationService
	stats        *mocks.MockStatsService
	health       *mocks.MockHealthService
	sitemap      *mocks.MockSitemapService

	uploadDir string
	engine    *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		auth:         new(mocks.MockAuthService),
		categories:   new(mocks.MockCategoryService),
		menu:         new(mocks.MockMenuService),
		gallery:      new(mocks.MockGalleryService),
		users:        new(mocks.MockUserService),
		bookings:     new(mocks.MockBookingService),
		blog:         new(mocks.MockBlogService),
		notification: new(mocks.MockNotificationService),
		stats:        new(mocks.MockStatsService),
		health:       new(mocks.MockHealthService),
		sitemap:      new(mocks.MockSitemapService),
		uploadDir:    t.TempDir(),
	}

	f.engine = gin.New()
	router.Register(f.engine, router.Services{
		Auth:         f.auth,
		Categories:   f.categories,
		Menu:         f.menu,
		Gallery:      f.gallery,
		Users:        f.users,
		Bookings:     f.bookings,
		Blog:         f.blog,
		Notification: f.notification,
		Stats:        f.stats,
		Health:       f.health,
		Sitemap:      f.sitemap,
	}, router.Options{UploadDir: f.uploadDir})
	return f
}

// signIn attaches a session cookie that resolves to a user with role.
func (f *apiFixture) signIn(req *http.Request, role string) {
	token := "token-" + role
	f.auth.On("CurrentUser", mock.Anything, token).
		Return(&models.Session{SID: "sid-" + role}, &models.User{ID: "user-" + role, Role: role, IsActive: true}, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
}

func (f *apiFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCategoryRoutes(t *testing.T) {
	t.Run("list is public", func(t *testing.T) {
		f := newAPIFixture(t)
		f.categories.On("GetCategories", mock.Anything).Return([]models.Category{{ID: "cat-1", Name: "Starters", Color: "#3B82F6"}}, nil)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/categories", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Starters"`)
	})

	t.Run("create requires a session", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.serve(jsonRequest(http.MethodPost, "/api/categories", `{"name":"Desserts"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", errorBody(t, w)["code"])
		f.categories.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("create with session", func(t *testing.T) {
		f := newAPIFixture(t)
		f.categories.On("CreateCategory", mock.Anything, mock.MatchedBy(func(req services.CategoryRequest) bool {
			return req.Name != nil && *req.Name == "Desserts"
		}), (*multipart.FileHeader)(nil)).Return(&models.Category{ID: "cat-2", Name: "Desserts", Color: "#3B82F6"}, nil)

		req := jsonRequest(http.MethodPost, "/api/categories", `{"name":"Desserts"}`)
		f.signIn(req, models.RoleEditor)
		w := f.serve(req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"cat-2"`)
	})

	t.Run("delete in use reports the count", func(t *testing.T) {
		f := newAPIFixture(t)
		f.categories.On("DeleteCategory", mock.Anything, "cat-1").Return(&services.CategoryInUseError{MenuItems: 3})

		req := httptest.NewRequest(http.MethodDelete, "/api/categories/cat-1", nil)
		f.signIn(req, models.RoleAdmin)
		w := f.serve(req)

		assert.Equal(t, http.StatusConflict, w.Code)
		errBody := errorBody(t, w)
		assert.Equal(t, "CONFLICT", errBody["code"])
		assert.Equal(t, "category is used by 3 menu item(s)", errBody["details"])
	})

	t.Run("missing category", func(t *testing.T) {
		f := newAPIFixture(t)
		f.categories.On("GetCategoryByID", mock.Anything, "nope").Return(nil, services.ErrCategoryNotFound)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/categories/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Category not found.", errorBody(t, w)["message"])
	})
}

func TestAuthRoutes(t *testing.T) {
	t.Run("login sets the session cookie", func(t *testing.T) {
		f := newAPIFixture(t)
		expires := time.Now().Add(24 * time.Hour)
		f.auth.On("Login", mock.Anything, services.LoginRequest{Email: "chef@example.com", Password: "secret123"}, mock.AnythingOfType("services.ClientMeta")).
			Return(&services.LoginResult{User: &models.User{ID: "u1", Email: "chef@example.com", Role: models.RoleAdmin}, Token: "signed-token", ExpiresAt: expires}, nil)

		w := f.serve(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"chef@example.com","password":"secret123"}`))

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, middleware.SessionCookieName, cookie.Name)
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Contains(t, w.Body.String(), `"email":"chef@example.com"`)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newAPIFixture(t)
		f.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, services.ErrInvalidCredentials)

		w := f.serve(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"chef@example.com","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("login without password", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.serve(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"chef@example.com"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		f := newAPIFixture(t)
		f.auth.On("Logout", mock.Anything, "sid-admin").Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		f.signIn(req, models.RoleAdmin)
		w := f.serve(req)

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.True(t, cookies[0].MaxAge < 0)
		f.auth.AssertExpectations(t)
	})

	t.Run("me", func(t *testing.T) {
		f := newAPIFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		f.signIn(req, models.RoleEditor)

		w := f.serve(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"user-editor"`)
	})
}

func TestUserRoutesRequireAdmin(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	f.signIn(req, models.RoleEditor)

	w := f.serve(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.users.AssertNotCalled(t, "GetUsers", mock.Anything)

	f.users.On("DeleteUser", mock.Anything, "user-admin", "user-admin").Return(fmt.Errorf("%w: you cannot delete your own account", services.ErrForbidden))
	req = httptest.NewRequest(http.MethodDelete, "/api/users/user-admin", nil)
	f.signIn(req, models.RoleAdmin)

	w = f.serve(req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingRoutes(t *testing.T) {
	f := newAPIFixture(t)
	f.bookings.On("CreateBooking", mock.Anything, mock.AnythingOfType("services.CreateBookingRequest")).
		Return(&models.Booking{ID: "b1", Status: string(models.BookingStatusPending)}, nil)

	w := f.serve(jsonRequest(http.MethodPost, "/api/bookings", `{"customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"555","event_date":"2024-05-01"}`))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = f.serve(httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.bookings.AssertNotCalled(t, "GetBookings", mock.Anything, mock.Anything)
}

func TestGalleryUploadParsesForm(t *testing.T) {
	f := newAPIFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range []string{"terrace.jpg", "kitchen.jpg"} {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really an image"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("titles", "Terrace"))
	require.NoError(t, mw.WriteField("titles", "Kitchen"))
	require.NoError(t, mw.WriteField("type", "interior"))
	require.NoError(t, mw.WriteField("featured", "true"))
	require.NoError(t, mw.Close())

	f.gallery.On("UploadGalleryImages", mock.Anything, mock.MatchedBy(func(req services.GalleryUploadRequest) bool {
		return len(req.Files) == 2 &&
			req.Files[0].Filename == "terrace.jpg" &&
			assert.ObjectsAreEqual([]string{"Terrace", "Kitchen"}, req.Titles) &&
			req.Type == "interior" &&
			req.Featured
	})).Return([]models.GalleryImage{{ID: "g1"}, {ID: "g2"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/gallery", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	f.signIn(req, models.RoleEditor)
	w := f.serve(req)

	assert.Equal(t, http.StatusCreated, w.Code)
	f.gallery.AssertExpectations(t)
}

func TestGalleryUploadRejectsBadImage(t *testing.T) {
	f := newAPIFixture(t)
	f.gallery.On("UploadGalleryImages", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: unsupported image type text/plain", services.ErrUploadFailed))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("images[]", "notes.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("hello"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/gallery", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	f.signIn(req, models.RoleAdmin)
	w := f.serve(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPLOAD_FAILED", errorBody(t, w)["code"])
}

func TestNotificationRoutes(t *testing.T) {
	t.Run("dispatch failure", func(t *testing.T) {
		f := newAPIFixture(t)
		f.notification.On("SubmitContact", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: smtp: connection refused", services.ErrDispatch))

		w := f.serve(jsonRequest(http.MethodPost, "/api/contact", `{"name":"Ana","email":"ana@example.com","subject":"Hi","message":"Hello"}`))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		errBody := errorBody(t, w)
		assert.Equal(t, "DISPATCH_FAILED", errBody["code"])
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("validation failure", func(t *testing.T) {
		f := newAPIFixture(t)
		f.notification.On("SubmitCateringInquiry", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: event date is required", services.ErrValidation))

		w := f.serve(jsonRequest(http.MethodPost, "/api/catering-inquiry", `{"name":"Ana"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_FAILED", errorBody(t, w)["code"])
	})

	t.Run("table booking", func(t *testing.T) {
		f := newAPIFixture(t)
		f.notification.On("SubmitTableBooking", mock.Anything, mock.Anything).
			Return(&services.NotificationResult{Success: true, Message: "Reservation received", Booking: &models.Booking{ID: "b9"}}, nil)

		w := f.serve(jsonRequest(http.MethodPost, "/api/book-table", `{"name":"Ana"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		assert.Contains(t, w.Body.String(), `"id":"b9"`)
	})
}

func TestBlogRoutes(t *testing.T) {
	t.Run("public post by slug", func(t *testing.T) {
		f := newAPIFixture(t)
		f.blog.On("ReadPublishedPost", mock.Anything, "fresh-basil-pesto").Return(&models.BlogPost{ID: "p1", Slug: "fresh-basil-pesto"}, nil)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/blog/posts/fresh-basil-pesto", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		f.blog.AssertExpectations(t)
	})

	t.Run("admin create uses the session author", func(t *testing.T) {
		f := newAPIFixture(t)
		f.blog.On("CreatePost", mock.Anything, "user-editor", mock.AnythingOfType("services.BlogPostRequest")).
			Return(&models.BlogPost{ID: "p2", Title: "Spring menu"}, nil)

		req := jsonRequest(http.MethodPost, "/api/admin/blog/posts", `{"title":"Spring menu","content":"New dishes."}`)
		f.signIn(req, models.RoleEditor)
		w := f.serve(req)

		assert.Equal(t, http.StatusCreated, w.Code)
		f.blog.AssertExpectations(t)
	})

	t.Run("admin routes require a session", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/admin/blog/posts", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSiteRoutes(t *testing.T) {
	t.Run("health degraded", func(t *testing.T) {
		f := newAPIFixture(t)
		f.health.On("Check", mock.Anything).Return(&services.HealthReport{Status: "degraded", Database: "unreachable"})

		w := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
	})

	t.Run("health ok", func(t *testing.T) {
		f := newAPIFixture(t)
		f.health.On("Check", mock.Anything).Return(&services.HealthReport{Status: "ok", Database: "connected"})

		w := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sitemap", func(t *testing.T) {
		f := newAPIFixture(t)
		f.sitemap.On("Generate", mock.Anything).Return([]byte(`<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`), nil)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<urlset>")
	})

	t.Run("stats require a session", func(t *testing.T) {
		f := newAPIFixture(t)
		f.stats.On("GetSummary", mock.Anything).Return(&models.StatsSummary{Categories: 4, PendingBookings: 2}, nil)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		f.signIn(req, models.RoleAdmin)
		w = f.serve(req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"pending_bookings":2`)
	})

	t.Run("uploads are served", func(t *testing.T) {
		f := newAPIFixture(t)
		dir := filepath.Join(f.uploadDir, "menu")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dish.txt"), []byte("pixels"), 0o644))

		w := f.serve(httptest.NewRequest(http.MethodGet, "/uploads/menu/dish.txt", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pixels", w.Body.String())
	})

	t.Run("staging uploads are not served", func(t *testing.T) {
		f := newAPIFixture(t)
		dir := filepath.Join(f.uploadDir, "tmp")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "raw.txt"), []byte("unchecked"), 0o644))

		w := f.serve(httptest.NewRequest(http.MethodGet, "/uploads/tmp/raw.txt", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Body.String(), "unchecked")
	})

	t.Run("unknown route", func(t *testing.T) {
		f := newAPIFixture(t)

		w := f.serve(httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", errorBody(t, w)["code"])
	})
}
