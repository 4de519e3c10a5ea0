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

	"workoutjournal/backend/internal/config"
	"workoutjournal/backend/internal/db"
	"workoutjournal/backend/internal/handler"
	"workoutjournal/backend/internal/repository"
	"workoutjournal/backend/internal/router"
	"workoutjournal/backend/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	workoutRepo := repository.NewWorkoutRepository(database)
	workflowRepo := repository.NewWorkflowRepository(database)
	catalogRepo := repository.NewCatalogRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo, workflowRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	workoutService := service.NewWorkoutService(workoutRepo, workflowRepo)
	historyService := service.NewHistoryService(workoutRepo)
	catalogService := service.NewCatalogService(catalogRepo)

	authHandler := handler.NewAuthHandler(authService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	historyHandler := handler.NewHistoryHandler(historyService)
	catalogHandler := handler.NewCatalogHandler(catalogService)

	engine := router.New(
		authService,
		authHandler,
		workoutHandler,
		historyHandler,
		catalogHandler,
		cfg.CORSOrigins,
		cfg.RequestTimeout,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		log.Printf("backend listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
