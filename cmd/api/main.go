package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"resuminator/internal/ai"
	"resuminator/internal/api"
	"resuminator/internal/auth"
	"resuminator/internal/config"
	"resuminator/internal/database"
	"resuminator/internal/section"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.AutoMigrate(db, section.Tables()); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	log.Printf("database migrated")

	authService, err := auth.NewAuthService(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
	}()

	aiClient, err := ai.NewClient(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatalf("init gemini client: %v", err)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, db, authService, redisClient, aiClient, logger, cfg)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
