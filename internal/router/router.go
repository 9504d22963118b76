package router

import (
	"net/http"
	"path/filepath"

	"restaurant_backend/internal/config"
	"restaurant_backend/internal/database"
	"restaurant_backend/internal/handlers"
	"restaurant_backend/internal/mailer"
	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services"
	"restaurant_backend/internal/storage"
	"restaurant_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the process-wide resources the API is built from.
type Dependencies struct {
	Config *config.Config
	DB     *database.DB
	Images *storage.ImageStore
	Mailer mailer.Mailer
	Redis  *redis.Client // nil disables login throttling
}

// Services is the set of services the routes are served by.
type Services struct {
	Auth         services.AuthService
	Categories   services.CategoryService
	Menu         services.MenuService
	Gallery      services.GalleryService
	Users        services.UserService
	Bookings     services.BookingService
	Blog         services.BlogService
	Notification services.NotificationService
	Stats        services.StatsService
	Health       services.HealthService
	Sitemap      services.SitemapService
}

// Options tune route behavior that does not belong to a service.
type Options struct {
	SecureCookie bool
	UploadDir    string
	LoginLimiter *middleware.RateLimiter
}

// NewServices wires repositories into services.
func NewServices(deps Dependencies) Services {
	db := deps.DB
	cfg := deps.Config

	// Initialize Repositories
	categoryRepo := repositories.NewCategoryRepository(db)
	menuRepo := repositories.NewMenuItemRepository(db)
	galleryRepo := repositories.NewGalleryRepository(db)
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	contactRepo := repositories.NewContactRepository()
	blogRepo := repositories.NewBlogRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Initialize Services
	return Services{
		Auth:         services.NewAuthService(userRepo, sessionRepo, db, cfg.SessionSecret, cfg.SessionTTL),
		Categories:   services.NewCategoryService(categoryRepo, deps.Images, db),
		Menu:         services.NewMenuService(menuRepo, deps.Images, db),
		Gallery:      services.NewGalleryService(galleryRepo, deps.Images, db),
		Users:        services.NewUserService(userRepo, db),
		Bookings:     services.NewBookingService(bookingRepo, db),
		Blog:         services.NewBlogService(blogRepo, db),
		Notification: services.NewNotificationService(deps.Mailer, contactRepo, bookingRepo, db, cfg.AdminEmail),
		Stats:        services.NewStatsService(statsRepo),
		Health:       services.NewHealthService(db),
		Sitemap:      services.NewSitemapService(blogRepo, cfg.SiteURL),
	}
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	opts := Options{
		SecureCookie: deps.Config.IsProduction(),
		UploadDir:    deps.Images.Root(),
		LoginLimiter: middleware.NewLoginRateLimiter(deps.Redis, deps.Config.LoginRateLimit, deps.Config.LoginRateWindow),
	}
	Register(engine, NewServices(deps), opts)
}

// Register mounts every route on engine.
func Register(engine *gin.Engine, svc Services, opts Options) {
	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, opts.SecureCookie)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	menuHandler := handlers.NewMenuHandler(svc.Menu)
	galleryHandler := handlers.NewGalleryHandler(svc.Gallery)
	userHandler := handlers.NewUserHandler(svc.Users)
	bookingHandler := handlers.NewBookingHandler(svc.Bookings)
	blogHandler := handlers.NewBlogHandler(svc.Blog)
	notificationHandler := handlers.NewNotificationHandler(svc.Notification)
	siteHandler := handlers.NewSiteHandler(svc.Stats, svc.Health, svc.Sitemap)

	requireSession := middleware.RequireSession(svc.Auth)
	limiter := opts.LoginLimiter
	if limiter == nil {
		limiter = middleware.NewLoginRateLimiter(nil, 0, 0)
	}

	engine.GET("/health", siteHandler.Health)
	engine.GET("/sitemap.xml", siteHandler.Sitemap)
	if opts.UploadDir != "" {
		for _, p := range storage.PublicProfiles {
			engine.StaticFS(storage.PublicPrefix+"/"+p.Dir, gin.Dir(filepath.Join(opts.UploadDir, p.Dir), false))
		}
	}

	api := engine.Group("/api")

	SetupAuthRoutes(api, authHandler, requireSession, limiter.Middleware())
	SetupCategoryRoutes(api, categoryHandler, requireSession)
	SetupMenuItemRoutes(api, menuHandler, requireSession)
	SetupGalleryRoutes(api, galleryHandler, requireSession)
	SetupBookingRoutes(api, bookingHandler, requireSession)
	SetupNotificationRoutes(api, notificationHandler)
	SetupBlogRoutes(api, blogHandler)

	authenticated := api.Group("")
	authenticated.Use(requireSession)
	{
		SetupUserRoutes(authenticated, userHandler)
		SetupAdminBlogRoutes(authenticated, blogHandler)
		SetupStatsRoutes(authenticated, siteHandler)
	}

	engine.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Route not found", c.Request.URL.Path))
	})
}
