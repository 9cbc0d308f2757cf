package main

import (
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ulugbek-dev/taskearn-api/internal/config"
	"github.com/ulugbek-dev/taskearn-api/internal/database"
	"github.com/ulugbek-dev/taskearn-api/internal/handlers"
	"github.com/ulugbek-dev/taskearn-api/internal/middleware"
	"github.com/ulugbek-dev/taskearn-api/internal/repository"
	"github.com/ulugbek-dev/taskearn-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The reference timezone defines the daily reset boundary
	loc, err := time.LoadLocation(cfg.ReferenceTimezone)
	if err != nil {
		log.Fatalf("Failed to load reference timezone %q: %v", cfg.ReferenceTimezone, err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("taskearn_session", store))

	// Initialize repositories
	db := database.GetDB()
	catalogRepo := repository.NewCatalogRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	userRepo := repository.NewUserRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)

	// Initialize services
	allocator := services.NewAllocatorService(catalogRepo, assignRepo)
	referrals := services.NewReferralService(userRepo, completionRepo, referralRepo, cfg.ReferralBonusAmount, cfg.BonusRedeemBlock)
	completions := services.NewCompletionService(assignRepo, completionRepo, catalogRepo, referrals, loc)
	withdrawals := services.NewWithdrawalService(withdrawalRepo)
	accounts := services.NewAccountService(userRepo, time.Duration(cfg.DeleteGraceHours)*time.Hour)

	// Start the account reaper
	reaper := services.NewReaperService(userRepo, time.Duration(cfg.ReaperIntervalMinutes)*time.Minute)
	if err := reaper.Start(); err != nil {
		log.Fatalf("Failed to start reaper: %v", err)
	}
	defer reaper.Stop()

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(allocator, completions, userRepo, loc)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawals)
	referralHandler := handlers.NewReferralHandler(referrals)
	accountHandler := handlers.NewAccountHandler(accounts)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TaskEarn API is running",
		})
	})

	// API routes (protected)
	api := r.Group("/api")
	api.Use(middleware.RequireAuth())
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("/today", taskHandler.Today)
			tasks.POST("/:id/complete", taskHandler.Complete)
			tasks.GET("/history", taskHandler.History)
		}

		api.POST("/withdrawals", withdrawalHandler.Request)
		api.GET("/withdrawals", withdrawalHandler.List)

		api.GET("/referrals", referralHandler.Status)
		api.POST("/referrals/redeem", referralHandler.Redeem)

		api.POST("/account/delete-request", accountHandler.RequestDeletion)
		api.DELETE("/account/delete-request", accountHandler.CancelDeletion)
	}

	// Internal routes (shared secret, not user-facing)
	internal := r.Group("/internal")
	internal.Use(middleware.RequireInternalToken(cfg.InternalToken))
	{
		internal.POST("/withdrawals/:id/paid", withdrawalHandler.MarkPaid)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
