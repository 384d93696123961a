package routes

import (
	"log"

	"astralis-ops-backend/internal/api/handlers"
	"astralis-ops-backend/internal/api/middleware"
	"astralis-ops-backend/internal/auth"
	"astralis-ops-backend/internal/config"
	"astralis-ops-backend/internal/mailer"
	"astralis-ops-backend/internal/repository"
	"astralis-ops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewPasswordResetTokenRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Initialize token signing
	tokenService, err := auth.NewService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTLifetime)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize mailer
	smtpMailer, err := mailer.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, validator)
	userService := service.NewUserService(userRepo, validator)
	authService := service.NewAuthService(userRepo, tokenRepo, organizationRepo, tokenService, smtpMailer, validator, cfg.ResetTokenTTL, cfg.ResetBaseURL)
	bookingService := service.NewBookingService(bookingRepo, smtpMailer, validator)
	postService := service.NewPostService(postRepo, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	userHandler := handlers.NewUserHandler(userService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	postHandler := handlers.NewPostHandler(postService)

	authMiddleware := auth.NewMiddleware(tokenService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (no token required)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
		}

		// Everything below requires a valid token
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())

		orgs := protected.Group("/organizations")
		{
			orgs.POST("", authMiddleware.RequireRole("admin"), organizationHandler.CreateOrganization)
			orgs.GET("", organizationHandler.ListOrganizations)
			orgs.GET("/:id", organizationHandler.GetOrganization)
			orgs.PUT("/:id", authMiddleware.RequireRole("admin"), organizationHandler.UpdateOrganization)
		}

		users := protected.Group("/users")
		{
			users.GET("/me", userHandler.GetCurrentUser)
			users.GET("", userHandler.ListUsers)
			users.PUT("/:id", authMiddleware.RequireRole("admin"), userHandler.UpdateUser)
			users.DELETE("/:id", authMiddleware.RequireRole("admin"), userHandler.DeleteUser)
		}

		bookings := protected.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.PATCH("/:id/status", bookingHandler.UpdateBookingStatus)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}

		posts := protected.Group("/posts")
		{
			posts.POST("", authMiddleware.RequireRole("admin", "editor"), postHandler.CreatePost)
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:slug", postHandler.GetPostBySlug)
			posts.PUT("/:id", authMiddleware.RequireRole("admin", "editor"), postHandler.UpdatePost)
			posts.POST("/:id/publish", authMiddleware.RequireRole("admin", "editor"), postHandler.PublishPost)
			posts.POST("/:id/unpublish", authMiddleware.RequireRole("admin", "editor"), postHandler.UnpublishPost)
			posts.DELETE("/:id", authMiddleware.RequireRole("admin"), postHandler.DeletePost)
		}
	}

	return router
}
