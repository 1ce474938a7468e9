package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gestic/internal/app/dsn"
	"gestic/internal/app/repository"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// checkdb prints the row count of every catalog table and exits non-zero
// when the schema does not enforce the foreign key delete rules.
func main() {
	_ = godotenv.Load()

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}

	opts := repository.DefaultOptions()
	opts.LogLevel = logger.Silent
	repo, err := repository.New(dsnStr, opts)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := repo.TableCounts(ctx)
	if err != nil {
		logrus.Fatal("Failed to count rows: ", err)
	}
	tables := make([]string, 0, len(counts))
	for t := range counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	fmt.Println("Rows per table:")
	for _, t := range tables {
		fmt.Printf("  %-16s %d\n", t, counts[t])
	}

	problems, err := repo.VerifyConstraints(ctx)
	if err != nil {
		logrus.Fatal("Failed to read constraints: ", err)
	}
	if len(problems) == 0 {
		fmt.Println("Foreign keys: OK")
		return
	}
	fmt.Println("Foreign keys:")
	for _, p := range problems {
		fmt.Println("  " + p)
	}
	os.Exit(1)
}
