package main

import (
	"log"
	"time"

	"astralis-ops-backend/internal/config"
	"astralis-ops-backend/internal/database"
	"astralis-ops-backend/internal/logger"
	"astralis-ops-backend/internal/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// One-shot cleaner for password reset tokens. Meant to run on a schedule,
// e.g. a cron job or a Kubernetes CronJob, alongside the API server.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger.Setup(cfg.LogLevel)

	db, err := database.Initialize(cfg.DatabaseURL, nil)
	if err != nil {
		logrus.Fatal("Failed to initialize database:", err)
	}

	tokenRepo := repository.NewPasswordResetTokenRepository(db)

	removed, err := tokenRepo.DeleteExpiredOrUsed(time.Now())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to sweep password reset tokens")
	}

	logrus.WithField("removed", removed).Info("Password reset token sweep complete")
}
