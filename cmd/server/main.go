package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "gradebook/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gradebook/internal/auth"
	"gradebook/internal/cache"
	"gradebook/internal/config"
	"gradebook/internal/db"
	"gradebook/internal/handler"
	"gradebook/internal/logger"
	"gradebook/internal/repository"
	"gradebook/internal/router"
	"gradebook/internal/service"
)

// @title Gradebook API
// @version 1.0
// @description Student score records with ranking reports and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger.InitFromDebug(cfg.Debug)

	if cfg.JWTSecret == "change-me" {
		logger.Warning("JWT_SECRET is not set, using the insecure default")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second

	gormDB, err := db.Open(cfg)
	if err != nil {
		logger.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("%v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient == nil {
		logger.Info("REDIS_ADDR not set, student cache disabled")
	} else if err := cacheClient.Ping(context.Background()); err != nil {
		logger.Warningf("redis unavailable, continuing without cache: %v", err)
	}
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	studentService := service.NewStudentService(studentRepo, cacheClient)
	reportService := service.NewReportService(studentRepo)

	// Register routes
	router.Register(
		e,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewStudentHandler(studentService),
		handler.NewReportHandler(reportService),
		handler.NewSeedHandler(studentService),
	)

	logger.Infof("Swagger documentation available at: %s", swaggerURL(cfg))

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	logger.Info("server stopped")
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
