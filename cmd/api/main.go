package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	adapterHTTP "github.com/mkurdziel/baseline-habit-tracker/internal/adapters/handler/http"
	"github.com/mkurdziel/baseline-habit-tracker/internal/adapters/cache"
	"github.com/mkurdziel/baseline-habit-tracker/internal/adapters/repository"
	"github.com/mkurdziel/baseline-habit-tracker/internal/config"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/domain"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/services"
	"github.com/mkurdziel/baseline-habit-tracker/internal/core/workers"
)

//	@title			Baseline Habit Tracker API
//	@version		1.0
//	@description	Schedule-aware habit tracking with streaks, completion rates and heatmaps.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	startTime := time.Now()

	cfg := config.Load()

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("Warning: redis unavailable, running without cache: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	userRepo := repository.NewPostgresUserRepository(db)
	completionRepo := repository.NewPostgresCompletionRepository(db)

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	streakWorker := workers.NewStreakWorker(habitRepo, completionRepo, nil)
	streakWorker.Start(ctx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenDuration, userRepo)
	habitService := services.NewHabitService(habitRepo)
	completionService := services.NewCompletionService(completionRepo, habitRepo, streakWorker, nil)
	statsService := services.NewStatsService(habitRepo, completionRepo, nil)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:       adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		CompletionHandler: adapterHTTP.NewCompletionHandler(completionService),
		StatsHandler:      adapterHTTP.NewStatsHandler(statsService),
		TokenService:      tokenService,
		DB:                db,
		Redis:             redisClient,
		StartTime:         startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Baseline Habit Tracker running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
