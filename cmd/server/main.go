package main

import (
	"net/http"
	"os"

	_ "famreg/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"famreg/internal/auth"
	"famreg/internal/cache"
	"famreg/internal/config"
	"famreg/internal/db"
	"famreg/internal/handler"
	"famreg/internal/logging"
	"famreg/internal/model"
	"famreg/internal/repository"
	"famreg/internal/router"
	"famreg/internal/service"
	"famreg/internal/storage"
)

// @title Family Registry API
// @version 1.0
// @description REST API for user-owned parents, children and tags with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logging.L()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Parent{},
			&model.Tag{},
			&model.Child{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("failed to drop table (may not exist)")
			}
		}
		log.Info("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Child{},
		&model.Parent{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	imageStore, err := storage.NewImageStore(cfg.MediaDir)
	if err != nil {
		log.WithError(err).Fatal("image store init")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	childRepo := repository.NewChildRepository(gormDB)
	parentRepo := repository.NewParentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	tagService := service.NewTagService(tagRepo)
	childService := service.NewChildService(childRepo)
	parentService := service.NewParentService(parentRepo, tagRepo, childRepo, imageStore, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	tagHandler := handler.NewTagHandler(tagService)
	childHandler := handler.NewChildHandler(childService)
	parentHandler := handler.NewParentHandler(parentService)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		authHandler,
		tagHandler,
		childHandler,
		parentHandler,
	)

	addr := ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
