package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quizhub/quizhub/internal/api"
	"github.com/quizhub/quizhub/internal/config"
	"github.com/quizhub/quizhub/internal/db"
	"github.com/quizhub/quizhub/internal/logger"
	"github.com/quizhub/quizhub/internal/repository/sqlite"
	"github.com/quizhub/quizhub/internal/services"
	"github.com/quizhub/quizhub/internal/session"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("QuizHub Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("bcrypt_cost=%d", cfg.BcryptCost)
	log.Debug("session_ttl_minutes=%d", cfg.SessionTTLMinutes)
	log.Debug("leaderboard_limit=%d", cfg.LeaderboardLimit)
	log.Debug("history_limit=%d", cfg.HistoryLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	quizRepo := sqlite.NewQuizRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.BcryptCost)
	quizService := services.NewQuizService(quizRepo)
	scoringService := services.NewScoringService(quizRepo, attemptRepo)
	attemptService := services.NewAttemptService(attemptRepo, cfg.LeaderboardLimit, cfg.HistoryLimit)

	srv := &api.Server{
		AuthService:    authService,
		QuizService:    quizService,
		ScoringService: scoringService,
		AttemptService: attemptService,
		Sessions:       session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute),
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("QuizHub Server Stopped")
	log.Info("===========================================")
}
