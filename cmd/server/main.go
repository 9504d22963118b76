package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant_backend/internal/config"
	"restaurant_backend/internal/database"
	"restaurant_backend/internal/mailer"
	"restaurant_backend/internal/router"
	"restaurant_backend/internal/storage"
	"restaurant_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Logger
	utils.InitLogger(cfg.LogLevel, !cfg.IsProduction())

	ctx := context.Background()

	// Initialize Database
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		utils.LogError(err, "Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		utils.LogError(err, "Failed to initialize database schema")
		os.Exit(1)
	}
	utils.LogInfo("Database initialized")

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		utils.LogWarn(err, "Redis unavailable, login rate limiting disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var mirror storage.Mirror
	if cfg.S3BucketName != "" {
		s3Mirror, err := storage.NewS3Mirror(ctx, cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			utils.LogWarn(err, "S3 mirror disabled", map[string]interface{}{"bucket": cfg.S3BucketName})
		} else {
			mirror = s3Mirror
		}
	}

	images, err := storage.NewImageStore(cfg.UploadDir, cfg.MaxUploadBytes, mirror)
	if err != nil {
		utils.LogError(err, "Failed to prepare upload directories", map[string]interface{}{"dir": cfg.UploadDir})
		os.Exit(1)
	}

	mail := mailer.NewSMTPMailer(mailer.Settings{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	router.Setup(engine, router.Dependencies{
		Config: cfg,
		DB:     db,
		Images: images,
		Mailer: mail,
		Redis:  redisClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}
