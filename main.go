package main

import (
	"log"
	"net/http"

	"auto-market/config"
	"auto-market/handlers"
	"auto-market/helper"
	"auto-market/middleware"
	"auto-market/models"
	"auto-market/repositories"
	"auto-market/services"
	"auto-market/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	imageRepo := repositories.NewImageRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)

	// Initialize storage
	localUploader := storage.NewLocalUploader(config.UploadDir, config.UploadBaseURL)
	var upstream storage.Uploader
	if config.MinioEndpoint != "" {
		minioUploader, err := storage.NewMinioUploader(
			config.MinioEndpoint,
			config.MinioAccessKey,
			config.MinioSecretKey,
			config.MinioBucket,
			config.MinioPublicURL,
			config.MinioUseSSL,
		)
		if err != nil {
			logger.Warn("upstream storage unavailable, using local uploads only", zap.Error(err))
		} else {
			upstream = minioUploader
		}
	}
	breaker := storage.NewBreaker(config.UpstreamCooldown)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, config.SessionTTL)
	catalogService := services.NewCatalogService(catalogRepo)
	listingService := services.NewListingService(listingRepo, imageRepo, favoriteRepo, catalogRepo, logger)
	imageService := services.NewImageService(listingRepo, imageRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, imageRepo)
	uploadService := services.NewUploadService(upstream, localUploader, breaker, logger)
	aiService := services.NewAIService(config.AIGatewayURL, config.AIGatewayAPIKey, config.AIModel)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	cookieMaxAge := int(config.SessionTTL.Seconds())
	authHandler := handlers.NewAuthHandler(authService, httpHelper, config.SessionCookie, cookieMaxAge, config.CookieSecure)
	listingHandler := handlers.NewListingHandler(listingService, httpHelper)
	adminHandler := handlers.NewAdminHandler(listingService, httpHelper)
	imageHandler := handlers.NewImageHandler(imageService, uploadService, httpHelper)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, httpHelper)
	catalogHandler := handlers.NewCatalogHandler(catalogService, httpHelper)
	aiHandler := handlers.NewAIHandler(aiService, httpHelper)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	if config.CorsOrigin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{config.CorsOrigin}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Locally stored uploads are served straight from disk.
	router.Static(config.UploadBaseURL, config.UploadDir)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.AuthOptional(authService, config.SessionCookie), authHandler.Me)
			auth.PATCH("/me", middleware.AuthRequired(authService, config.SessionCookie), authHandler.UpdateMe)
		}

		// Public catalog
		api.GET("/listings", middleware.AuthOptional(authService, config.SessionCookie), listingHandler.Search)
		api.GET("/listings/slug/:slug", listingHandler.GetBySlug)
		api.GET("/makes", catalogHandler.Makes)
		api.GET("/models", catalogHandler.Models)

		// Authenticated routes
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired(authService, config.SessionCookie))
		{
			protected.POST("/listings", listingHandler.Create)

			mine := protected.Group("/my/listings")
			{
				mine.GET("", listingHandler.ListMine)
				mine.GET("/:id", listingHandler.GetMine)
				mine.PATCH("/:id", listingHandler.UpdateMine)
				mine.DELETE("/:id", listingHandler.DeleteMine)
				mine.POST("/:id/publish", listingHandler.Publish)
				mine.POST("/:id/unpublish", listingHandler.Unpublish)
			}

			images := protected.Group("/listings/:id/images")
			{
				images.POST("", imageHandler.Attach)
				images.DELETE("/:imageId", imageHandler.Delete)
			}

			favorites := protected.Group("/favorites")
			{
				favorites.GET("", favoriteHandler.List)
				favorites.POST("", favoriteHandler.Add)
				favorites.DELETE("/:listingId", favoriteHandler.Remove)
			}

			protected.POST("/uploads/image", imageHandler.Upload)
			protected.POST("/ai/description", aiHandler.GenerateDescription)

			// Moderation
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/listings", adminHandler.ReviewQueue)
				admin.POST("/listings/:id/approve", adminHandler.Approve)
				admin.POST("/listings/:id/reject", adminHandler.Reject)
			}
		}
	}

	logger.Info("server starting", zap.String("port", config.Port))
	log.Fatal(router.Run(":" + config.Port))
}
