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

	"github.com/carspot/backend/internal/config"
	"github.com/carspot/backend/internal/db"
	"github.com/carspot/backend/internal/handler"
	"github.com/carspot/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 파일은 로컬 개발용 (없어도 됨)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not loaded")
	}

	cfg := config.Load()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 인증 설정이 잘못되면 DB 연결 전에 종료
	authStore := &db.Postgres{}
	authSvc, err := service.NewAuthService(authStore, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	authStore.Pool = pool

	if err := authStore.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	router := handler.NewRouter(handler.Services{
		Auth:     authSvc,
		Users:    service.NewUserService(authStore),
		Vehicles: service.NewVehicleService(authStore),
		Posts:    service.NewPostService(authStore),
		Profiles: service.NewProfileService(authStore, cfg.Profile.PublicBaseURL),
	}, handler.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		LoginLimiter:   handler.NewRateLimiter(cfg.RateLimit.LoginPerSecond, cfg.RateLimit.LoginBurst),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[HTTP] Listening on %s (env=%s)", cfg.Server.Addr, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[HTTP] Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[HTTP] Graceful shutdown failed: %v", err)
	}
}
