package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"revivecare/database"
	"revivecare/docs"
	"revivecare/internal/cache"
	"revivecare/internal/controllers"
	"revivecare/internal/middleware"
	"revivecare/internal/openai"
	"revivecare/internal/repository"
	"revivecare/internal/services"
	"revivecare/internal/utils"
	"revivecare/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title ReViveCare API
// @version 1.0
// @description Post-operative rehabilitation API for doctors and patients.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Printf("Warning: No .env file found, using process environment")
		}
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Redis is optional and only backs the doctor lookup cache
	var redisClient *cache.RedisClient
	if os.Getenv("USE_CACHE") == "true" {
		rc, err := cache.NewRedisClient()
		if err != nil {
			log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		} else {
			redisClient = rc
			defer redisClient.Close()
			log.Println("Redis cache enabled")
		}
	}

	// Initialize repositories
	var doctorRepo repository.DoctorRepository
	if redisClient != nil {
		doctorRepo = repository.NewCachedDoctorRepository(database.DB, redisClient.Client())
	} else {
		doctorRepo = repository.NewDoctorRepository(database.DB)
	}
	patientRepo := repository.NewPatientRepository(database.DB)
	sessionRepo := repository.NewExerciseSessionRepository(database.DB)
	chatRepo := repository.NewChatMessageRepository(database.DB)
	reportRepo := repository.NewPatientReportRepository(database.DB)

	// The chatbot runs without an assistant when no API key is configured
	var assistant controllers.Assistant
	if client, err := openai.NewClient(); err != nil {
		log.Printf("Warning: %v; chatbot replies are disabled", err)
	} else {
		assistant = client
	}

	var notifier controllers.Notifier
	if mailConfig := utils.LoadMailConfig(); mailConfig.Enabled() {
		notifier = utils.NewDoctorAlertMailer(mailConfig, utils.NewDialer(mailConfig))
		log.Printf("Doctor alert mail enabled via %s", mailConfig.SMTPHost)
	} else {
		log.Println("SMTP not configured; doctor alert mail is disabled")
	}

	janitor := services.NewSessionJanitor(sessionRepo, services.SessionStaleAfterFromEnv())
	if err := janitor.Start(); err != nil {
		log.Fatalf("Failed to start session janitor: %v", err)
	}
	defer janitor.Stop()

	// Initialize controllers
	authController := controllers.NewAuthController(doctorRepo, patientRepo)
	doctorController := controllers.NewDoctorController(doctorRepo, patientRepo, chatRepo)
	patientController := controllers.NewPatientController(patientRepo, sessionRepo, chatRepo, reportRepo)
	exerciseController := controllers.NewExerciseSessionController(sessionRepo)
	chatController := controllers.NewChatController(chatRepo, patientRepo, assistant, notifier)
	reportController := controllers.NewPatientReportController(reportRepo, patientRepo)

	docs.SwaggerInfo.Title = "ReViveCare API"
	docs.SwaggerInfo.Description = "Post-operative rehabilitation API for doctors and patients."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "ReViveCare API is running",
			"version":   "1.0.0",
			"status":    "healthy",
			"database":  database.DB.Dialector.Name(),
			"cache":     redisClient != nil,
			"assistant": assistant != nil,
			"mail":      notifier != nil,
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterDoctorRoutes(router, doctorController)
	routes.RegisterPatientRoutes(router, patientController, reportController)
	routes.RegisterExerciseRoutes(router, exerciseController)
	routes.RegisterChatRoutes(router, chatController)
	routes.RegisterReportRoutes(router, reportController)
	routes.RegisterSwaggerRoutes(router)

	// Debug endpoints
	router.GET("/debug/database", func(c *gin.Context) {
		if err := database.Ping(database.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"database_health": false,
				"error":           err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"database_health": true,
			"driver":          database.DB.Dialector.Name(),
		})
	})

	router.GET("/debug/cache", func(c *gin.Context) {
		if redisClient == nil {
			c.JSON(http.StatusOK, gin.H{"enabled": false})
			return
		}
		status, err := redisClient.GetStatus()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"enabled": true, "error": err.Error()})
			return
		}
		status["enabled"] = true
		c.JSON(http.StatusOK, status)
	})

	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(http.StatusOK, gin.H{
			"goroutines":      runtime.NumGoroutine(),
			"memory_mb":       m.Alloc / 1024 / 1024,
			"janitor_running": janitor.IsRunning(),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("ReViveCare API server starting on port %s", port)
		log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", port)
		log.Printf("Database Health: http://localhost:%s/debug/database", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func corsOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:5173"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
