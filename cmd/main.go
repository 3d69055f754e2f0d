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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"spaceexplorer/internal/clients"
	"spaceexplorer/internal/config"
	"spaceexplorer/internal/handlers"
	"spaceexplorer/internal/middleware"
	"spaceexplorer/internal/repository"
	"spaceexplorer/internal/service"
	"spaceexplorer/internal/worker"
	"spaceexplorer/pkg/database"
	"spaceexplorer/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.Println("=== Space Explorer API Starting ===")

	cfg := config.Load()

	// Подключение к PostgreSQL
	db, err := database.Connect(database.Config(cfg.DB))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// Подключение к Redis
	redisClient, err := redis.Connect(redis.Config(cfg.Redis))
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Репозитории
	apodRepo := repository.NewAPODRepository(db)
	asteroidRepo := repository.NewAsteroidRepository(db)
	marsRepo := repository.NewMarsWeatherRepository(db)
	launchRepo := repository.NewLaunchRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Клиенты апстримов
	nasaClient := clients.NewNASAClient(clients.NASAConfig(cfg.NASA))
	launchClient := clients.NewLaunchClient(cfg.Launch.URL)

	// Сервисы
	spaceService := service.NewSpaceService(
		apodRepo, asteroidRepo, marsRepo, launchRepo,
		cacheRepo, nasaClient, launchClient,
		service.SpaceConfig{
			Staleness:      cfg.Cache.Staleness,
			CacheTTL:       cfg.Cache.TTL,
			LaunchPageSize: cfg.Launch.PageSize,
		},
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, apodRepo, cfg.Export.OutputDir)
	authService := service.NewAuthService(userRepo, cacheRepo, cfg.Auth.SessionTTL)

	// Фоновый прогрев кэша (выключен по умолчанию, путь чтения
	// от него не зависит)
	scheduler := worker.NewScheduler()
	if cfg.Workers.RefreshEnabled {
		scheduler.AddWorker(worker.NewRefreshWorker(spaceService, cfg.Workers.RefreshInterval))
		log.Printf("Refresh Worker enabled (interval: %v)", cfg.Workers.RefreshInterval)
	}
	go scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in DEBUG mode")
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.App.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if !cfg.App.Debug {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		r.Use(middleware.RateLimitMiddleware(limiter))
		log.Printf("Rate limiting enabled: %d req/sec, burst: %d",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	spaceHandler := handlers.NewSpaceHandler(spaceService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	authHandler := handlers.NewAuthHandler(authService)

	api := r.Group("/api/v1")

	// Данные четырех доменов
	api.GET("/apod", spaceHandler.GetAPOD)
	api.GET("/launches", spaceHandler.GetLaunches)
	api.GET("/mars-weather", spaceHandler.GetMarsWeather)
	api.GET("/asteroids", spaceHandler.GetAsteroids)

	// Аутентификация
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Избранное — только с сессией
	authed := api.Group("/")
	authed.Use(middleware.AuthRequired(authService))
	authed.POST("/favorite-apod", favoriteHandler.AddFavorite)
	authed.GET("/favorites", favoriteHandler.ListFavorites)
	authed.GET("/favorites/export", favoriteHandler.ExportFavorites)
	authed.DELETE("/unfavorite-apod/:id", favoriteHandler.RemoveFavorite)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": "connected",
				"redis":    "connected",
			},
		})
	})

	api.GET("/system/stats", func(c *gin.Context) {
		ctx := c.Request.Context()

		redisStats, _ := redis.GetStats(redisClient)
		asteroidCount, _ := asteroidRepo.Count(ctx)
		marsCount, _ := marsRepo.Count(ctx)
		launchCount, _ := launchRepo.Count(ctx)

		c.JSON(200, gin.H{
			"database": gin.H{
				"asteroids":         asteroidCount,
				"mars_weather_sols": marsCount,
				"launches":          launchCount,
			},
			"redis": redisStats,
			"workers": gin.H{
				"refresh_enabled": cfg.Workers.RefreshEnabled,
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.App.Port)
		log.Printf("API available at http://localhost:%s/api/v1", cfg.App.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited properly")
}
