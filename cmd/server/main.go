package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ambassador_portal/internal/api"
	"ambassador_portal/internal/app/service"
	"ambassador_portal/internal/common/security"
	"ambassador_portal/internal/domain/repository"
	"ambassador_portal/internal/platform/cache"
	"ambassador_portal/internal/platform/config"
	"ambassador_portal/internal/platform/database"
	"ambassador_portal/internal/platform/logger"
	"ambassador_portal/internal/platform/mail"
	"ambassador_portal/internal/platform/storage"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	config.Load()

	// 2. Initialize Logger
	if err := logger.Init(config.AppConfig.LogLevel, config.AppConfig.LogFormat); err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer zap.L().Sync()

	// 3. Initialize JWT
	security.InitJWT()

	// 4. Initialize Database (runs migrations)
	database.Connect()
	defer database.Close()
	zap.S().Info("Database connected")

	// 5. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	zap.S().Info("Redis connected")

	// 6. Initialize Object Store
	store, err := storage.NewCloudflareR2Store(storage.Config{
		Endpoint:  config.AppConfig.StorageEndpoint,
		AccessKey: config.AppConfig.StorageAccessKey,
		SecretKey: config.AppConfig.StorageSecretKey,
		Bucket:    config.AppConfig.StorageBucket,
		BaseURL:   config.AppConfig.StorageBaseURL,
	})
	if err != nil {
		zap.S().Fatalw("Could not initialize object store", "error", err)
	}

	// 7. Initialize Repositories
	ambassadorRepo := repository.NewPgAmbassadorRepository(database.DB)
	adminRepo := repository.NewPgAdminRepository(database.DB)
	uploadRepo := repository.NewPgUploadRepository(database.DB)
	tokenRepo := repository.NewRedisResetTokenRepository(cache.RDB)

	// 8. Initialize Services
	mailer := mail.NewSMTPMailer(config.AppConfig)
	codeGen := service.NewReferralCodeGenerator(ambassadorRepo)
	authService := service.NewAuthService(ambassadorRepo, adminRepo, tokenRepo, codeGen, mailer)
	leaderboardService := service.NewLeaderboardService(ambassadorRepo, cache.RDB, config.AppConfig.LeaderboardCacheTTL)
	ambassadorService := service.NewAmbassadorService(ambassadorRepo, uploadRepo, leaderboardService)
	uploadService := service.NewUploadService(uploadRepo, ambassadorRepo, store)
	adminService := service.NewAdminService(ambassadorRepo, uploadRepo, uploadService)
	referralService := service.NewReferralService(ambassadorRepo)

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, ambassadorService, uploadService, adminService, referralService, leaderboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.S().Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalw("Could not listen", "addr", server.Addr, "error", err)
		}
	}()

	<-stop // Wait for interrupt signal

	zap.S().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.S().Fatalw("Server shutdown failed", "error", err)
	}

	zap.S().Info("Server stopped gracefully")
}
