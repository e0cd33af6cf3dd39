package main

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"unitly-be/internal/cache"
	"unitly-be/internal/config"
	"unitly-be/internal/controllers"
	"unitly-be/internal/database"
	"unitly-be/internal/jwt"
	"unitly-be/internal/logger"
	"unitly-be/internal/middleware"
	"unitly-be/internal/repository"
	"unitly-be/internal/router"
	"unitly-be/internal/schema"
	"unitly-be/internal/service"
)

func main() {
	cfg := config.Get()
	logger.Setup(cfg.LogLevel)

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Redis is optional; without it every unit lookup hits the database
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("failed to connect to Redis, continuing without cache")
			cacheClient = nil
		} else {
			log.Info("connected to Redis cache")
		}
	}

	userRepo := repository.NewUserRepository(db)
	unitRepo := repository.NewUnitRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)

	authService := service.NewAuthService(userRepo, jwtService)
	unitService := service.NewUnitService(unitRepo, cacheClient, time.Duration(cfg.UnitCacheTTLMinutes)*time.Minute)

	r := router.NewRouter(router.Dependencies{
		App:              controllers.NewAppController(cfg),
		Auth:             controllers.NewAuthController(authService),
		Units:            controllers.NewUnitController(unitService),
		Schema:           controllers.NewSchemaController(schema.New()),
		QRCode:           controllers.NewQRCodeController(cfg.FrontendURL, cfg.BaseURL),
		JWT:              jwtService,
		GeneralRateLimit: middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		AuthRateLimit:    middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst),
	})

	log.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
