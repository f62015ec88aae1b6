package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"studycards/internal/api"
	"studycards/internal/config"
	"studycards/internal/db"
	"studycards/internal/generator"
	"studycards/internal/services"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	defer conn.Close()

	if cfg.GroqKey == "" {
		logrus.Warn("GROQ_API_KEY not set, generation will use the extractive fallback only")
	}
	aiService := services.NewAIService(cfg.GroqKey, cfg.GroqEndpoint, cfg.GroqModel)

	users := services.NewUserService(conn)
	flashcards := services.NewFlashcardService(conn)
	uploads := services.NewUploadService(conn, cfg.UploadDir)
	history := services.NewHistoryService(conn)
	ingestion := services.NewIngestionService(
		services.NewPDFService(),
		generator.New(aiService),
		flashcards, uploads, history)

	server := api.NewServer(users, ingestion, flashcards, history)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
}
