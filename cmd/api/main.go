package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internhub/internal/app"
	"internhub/internal/config"
	"internhub/internal/database"
	apphttp "internhub/internal/http"
	"internhub/internal/http/handlers"
	"internhub/internal/http/metrics"
	httpmw "internhub/internal/http/middleware"
	"internhub/internal/http/response"
	"internhub/internal/mail"
	"internhub/internal/observability"
	"internhub/internal/repository/postgres"
	redisrepo "internhub/internal/repository/redis"
	"internhub/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.AppEnv)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancelMigrate()
		log.Fatal(err)
	}
	cancelMigrate()

	redisClient := database.NewRedis(database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	internshipRepo := postgres.NewInternshipRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	excelFileRepo := postgres.NewExcelFileRepository(db)
	otpRepo := redisrepo.NewOTPRepository(redisClient, "internhub:")

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	authService := app.NewAuthService(userRepo, adminRepo, otpRepo, mailer, jwtProvider, logger, cfg.TokenTTL, cfg.OTPTTL)
	userService := app.NewUserService(userRepo, logger)
	internshipService := app.NewInternshipService(internshipRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, internshipRepo, userRepo, logger)
	transferService := app.NewTransferService(internshipRepo, excelFileRepo, userService, logger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := authService.EnsureAdmin(seedCtx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancelSeed()
		log.Fatal(err)
	}
	cancelSeed()

	rateLimiter := httpmw.NewRedisLimiter(redisClient, "internhub:")
	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	internshipHandler := handlers.NewInternshipHandler(internshipService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	profileHandler := handlers.NewProfileHandler(userService, cfg.MaxUploadBytes)
	adminHandler := handlers.NewAdminHandler(authService, internshipService, applicationService, userService, transferService, cfg.MaxUploadBytes)
	fileHandler := handlers.NewFileHandler(userService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)
	response.SetProductionMode(cfg.AppEnv == "production")

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		InternshipHandler:  internshipHandler,
		ApplicationHandler: applicationHandler,
		ProfileHandler:     profileHandler,
		AdminHandler:       adminHandler,
		FileHandler:        fileHandler,
		AuthMiddleware:     authMiddleware,
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
		MaxBodyBytes:       cfg.MaxUploadBytes,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
