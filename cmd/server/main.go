package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/wodtracker/internal/agent/providers"
	"anoa.com/wodtracker/internal/bootstrap"
	"anoa.com/wodtracker/internal/config"
	"anoa.com/wodtracker/internal/server"
	"anoa.com/wodtracker/pkg/database"
	"anoa.com/wodtracker/pkg/logger"
	"anoa.com/wodtracker/pkg/storage"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Setup(logger.Params{
		FileName:    cfg.LogFile,
		LogToStdout: true,
		Level:       cfg.LogLevel,
		FormatJSON:  cfg.LogJSON,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		Debug:    cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if err := bootstrap.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	deps := server.Deps{
		Config:       cfg,
		DB:           db,
		Redis:        connectRedis(ctx, cfg.RedisURL),
		ImageStorage: newImageStorage(cfg),
	}

	if cfg.MeiliSearchHost != "" {
		deps.Meili = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := providers.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to initialize gemini: %v", err)
		}
		defer gemini.Close()
		deps.LLM = gemini
	} else {
		log.Warn("⚠️ GEMINI_API_KEY not set, AI coach disabled")
	}

	srv, err := server.NewServer(deps)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	if err := bootstrap.SeedMovements(ctx, srv.Movements()); err != nil {
		log.Errorf("failed to seed movements: %v", err)
	}

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("server exited with error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
	if deps.Redis != nil {
		_ = deps.Redis.Close()
	}
}

// connectRedis returns nil when REDIS_URL is empty or unreachable; the server runs without
// live notifications, rate limiting and reminders in that case.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		log.Warn("⚠️ REDIS_URL not set, running without redis")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Errorf("invalid REDIS_URL: %v", err)
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
		_ = rdb.Close()
		return nil
	}

	log.Info("🔴 Connected to redis")
	return rdb
}

func newImageStorage(cfg *config.Config) storage.ImageStorage {
	imageStorage, err := storage.NewCloudinaryStorage(storage.CloudinaryConfig{
		CloudName:    cfg.CloudinaryCloudName,
		APIKey:       cfg.CloudinaryAPIKey,
		APISecret:    cfg.CloudinaryAPISecret,
		UploadFolder: cfg.CloudinaryUploadFolder,
	})
	if err != nil {
		log.Warnf("⚠️ Image storage disabled: %v", err)
		return nil
	}
	return imageStorage
}
