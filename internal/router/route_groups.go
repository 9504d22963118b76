package router

import (
	"restaurant_backend/internal/handlers"
	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes. Login is throttled per client IP.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, requireSession, loginLimit gin.HandlerFunc) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", loginLimit, authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(requireSession)
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupCategoryRoutes sets up the menu category routes. Reads are public.
func SetupCategoryRoutes(apiGroup *gin.RouterGroup, categoryHandler *handlers.CategoryHandler, requireSession gin.HandlerFunc) {
	categoryRoutes := apiGroup.Group("/categories")
	{
		categoryRoutes.GET("", categoryHandler.GetCategories)
		categoryRoutes.GET("/:id", categoryHandler.GetCategoryByID)
		categoryRoutes.POST("", requireSession, categoryHandler.CreateCategory)
		categoryRoutes.PUT("/:id", requireSession, categoryHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", requireSession, categoryHandler.DeleteCategory)
	}
}

// SetupMenuItemRoutes sets up the menu item routes. Reads are public.
func SetupMenuItemRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler, requireSession gin.HandlerFunc) {
	menuRoutes := apiGroup.Group("/menu-items")
	{
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/:id", menuHandler.GetMenuItemByID)
		menuRoutes.POST("", requireSession, menuHandler.CreateMenuItem)
		menuRoutes.PUT("/:id", requireSession, menuHandler.UpdateMenuItem)
		menuRoutes.DELETE("/:id", requireSession, menuHandler.DeleteMenuItem)
	}
}

// SetupGalleryRoutes sets up the gallery routes. Reads are public.
func SetupGalleryRoutes(apiGroup *gin.RouterGroup, galleryHandler *handlers.GalleryHandler, requireSession gin.HandlerFunc) {
	galleryRoutes := apiGroup.Group("/gallery")
	{
		galleryRoutes.GET("", galleryHandler.GetGalleryImages)
		galleryRoutes.GET("/:id", galleryHandler.GetGalleryImageByID)
		galleryRoutes.POST("", requireSession, galleryHandler.UploadGalleryImages)
		galleryRoutes.PUT("/:id", requireSession, galleryHandler.UpdateGalleryImage)
		galleryRoutes.DELETE("/:id", requireSession, galleryHandler.DeleteGalleryImage)
	}
}

// SetupBookingRoutes sets up the booking routes. Creating a booking is public.
func SetupBookingRoutes(apiGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler, requireSession gin.HandlerFunc) {
	bookingRoutes := apiGroup.Group("/bookings")
	{
		bookingRoutes.POST("", bookingHandler.CreateBooking)
		bookingRoutes.GET("", requireSession, bookingHandler.GetBookings)
		bookingRoutes.GET("/:id", requireSession, bookingHandler.GetBookingByID)
		bookingRoutes.PUT("/:id", requireSession, bookingHandler.UpdateBooking)
		bookingRoutes.DELETE("/:id", requireSession, bookingHandler.DeleteBooking)
	}
}

// SetupNotificationRoutes sets up the public contact and intake forms.
func SetupNotificationRoutes(apiGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	apiGroup.POST("/contact", notificationHandler.Contact)
	apiGroup.POST("/book-table", notificationHandler.BookTable)
	apiGroup.POST("/catering-inquiry", notificationHandler.CateringInquiry)
	apiGroup.POST("/cart-booking", notificationHandler.CartBooking)
}

// SetupBlogRoutes sets up the public blog routes.
func SetupBlogRoutes(apiGroup *gin.RouterGroup, blogHandler *handlers.BlogHandler) {
	blogRoutes := apiGroup.Group("/blog")
	{
		blogRoutes.GET("/posts", blogHandler.ListPublishedPosts)
		blogRoutes.GET("/posts/:slug", blogHandler.GetPublishedPost)
		blogRoutes.GET("/categories", blogHandler.GetBlogCategories)
	}
}

// SetupAdminBlogRoutes sets up blog management. Any signed-in user may edit the blog.
func SetupAdminBlogRoutes(authenticatedGroup *gin.RouterGroup, blogHandler *handlers.BlogHandler) {
	postRoutes := authenticatedGroup.Group("/admin/blog/posts")
	{
		postRoutes.GET("", blogHandler.ListPosts)
		postRoutes.GET("/:id", blogHandler.GetPost)
		postRoutes.POST("", blogHandler.CreatePost)
		postRoutes.PUT("/:id", blogHandler.UpdatePost)
		postRoutes.DELETE("/:id", blogHandler.DeletePost)
	}

	categoryRoutes := authenticatedGroup.Group("/admin/blog/categories")
	{
		categoryRoutes.GET("", blogHandler.GetBlogCategories)
		categoryRoutes.GET("/:id", blogHandler.GetBlogCategoryByID)
		categoryRoutes.POST("", blogHandler.CreateBlogCategory)
		categoryRoutes.PUT("/:id", blogHandler.UpdateBlogCategory)
		categoryRoutes.DELETE("/:id", blogHandler.DeleteBlogCategory)
	}
}

// SetupUserRoutes sets up the user management routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RequireRole(models.RoleAdmin))
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupStatsRoutes sets up the dashboard counters.
func SetupStatsRoutes(authenticatedGroup *gin.RouterGroup, siteHandler *handlers.SiteHandler) {
	authenticatedGroup.GET("/stats", siteHandler.GetStats)
}
