package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"moneylab-academy/handlers"
	"moneylab-academy/middleware"
	"moneylab-academy/models"
	"moneylab-academy/services"
	"moneylab-academy/utils"
	"moneylab-academy/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024, // avatars are capped at 2MB, leave headroom
	})

	// 🔐 GLOBAL: Only Gateway requests allowed (disabled when the service
	// token is unset, for direct/dev mode)
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID, X-User-Roles, X-User-Plan",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 not configured, avatar uploads fall back to local disk: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.UserProgress{},
		&models.CourseModule{},
		&models.Lesson{},
		&models.Quiz{},
		&models.NewsCache{},
		&models.AchievementType{},
		&models.UserAchievement{},
		&models.PlanChange{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	progressionService := services.NewProgressionService(db)
	leaderboardService := services.NewLeaderboardService(db)
	courseService := services.NewCourseService(db, progressionService)

	if err := courseService.SeedCatalog(); err != nil {
		log.Fatal("failed to seed course catalog:", err)
	}
	if err := progressionService.Achievements.SeedAchievementTypes(); err != nil {
		log.Fatal("failed to seed achievement types:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nexusService, err := services.NewNexusService(ctx)
	if err != nil {
		log.Fatal("failed to initialize Nexus AI client:", err)
	}
	newsService := services.NewNewsService(db, nexusService)
	newsService.StartNewsScheduler(ctx)

	// --- Auth service wiring ---
	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}
	academyServiceToken := os.Getenv("ACADEMY_SERVICE_TOKEN")

	authClient := services.NewAuthServiceClient(authServiceURL, academyServiceToken)
	userCtx := middleware.UserContextMiddleware(authClient)

	syncWorker := workers.NewProfileSyncWorker(db, authServiceURL, "/api/v1/public/profiles", academyServiceToken)
	syncWorker.Start(ctx)

	// ✅ Setup routes — enforced Gateway auth + consistent /s/ prefix
	handlers.SetupProgressionRoutes(app, userCtx, progressionService, leaderboardService)
	handlers.SetupLeaderboardRoutes(app, userCtx, leaderboardService)
	handlers.SetupCourseRoutes(app, userCtx, courseService, nexusService)
	handlers.SetupNewsRoutes(app, userCtx, newsService, nexusService)
	handlers.SetupProfileRoutes(app, userCtx, db)
	handlers.SetupPlanRoutes(app, userCtx, db)

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ News cache scheduler running")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
