package main

import (
	"log"
	"net/http"

	_ "jokebox/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jokebox/internal/cache"
	"jokebox/internal/config"
	"jokebox/internal/db"
	"jokebox/internal/handler"
	"jokebox/internal/model"
	"jokebox/internal/repository"
	"jokebox/internal/router"
	"jokebox/internal/service"
)

// @title Jokebox API
// @version 1.0
// @description Joke storage with user registration, login, and profile management.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Joke{},
		&model.User{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Printf("cache close: %v", err)
		}
	}()

	// Initialize repositories
	jokeRepo := repository.NewJokeRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize services
	jokeService := service.NewJokeService(jokeRepo, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	jokeHandler := handler.NewJokeHandler(jokeService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, jokeHandler, userHandler)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/api-docs"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/api-docs"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
