package main

import (
	"context"
	"time"

	"gestic/internal/app/dsn"
	"gestic/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	repo, err := repository.New(dsnStr, repository.DefaultOptions())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	logrus.Info("Connected to database successfully")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := repo.Migrate(ctx); err != nil {
		logrus.Fatal(err)
	}

	problems, err := repo.VerifyConstraints(ctx)
	if err != nil {
		logrus.Fatalf("Failed to verify constraints: %v", err)
	}
	for _, p := range problems {
		logrus.Warn(p)
	}

	logrus.Info("Database migration completed successfully")
}
