package repository

import (
	"context"
	"fmt"
	"time"

	"gestic/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection pool and SQL logging.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        logger.LogLevel
}

func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		SlowThreshold:   200 * time.Millisecond,
		LogLevel:        logger.Warn,
	}
}

// Repository is the access layer of the catalog: one Store per table.
type Repository struct {
	db *gorm.DB

	Roles      *Entity[ds.Role]
	Users      *Entity[ds.User]
	Categories *Entity[ds.Category]
	Services   *Entity[ds.Service]
	History    *Entity[ds.ServiceHistory]
	Requests   *Entity[ds.Request]
}

// Models lists the persisted entities in dependency order.
func Models() []interface{} {
	return []interface{}{
		&ds.Role{},
		&ds.User{},
		&ds.Category{},
		&ds.Service{},
		&ds.ServiceHistory{},
		&ds.Request{},
	}
}

// New connects to PostgreSQL using an opaque connection string.
func New(dsn string, opts Options) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, translate("database", 0, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	logrus.WithFields(logrus.Fields{
		"max_open_conns": opts.MaxOpenConns,
		"max_idle_conns": opts.MaxIdleConns,
	}).Info("database connection pool created")

	return NewWithDB(db), nil
}

// NewWithDB builds the access layer on top of an existing gorm handle.
func NewWithDB(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
		Roles: newEntity[ds.Role](db, "role", nil,
			"name", "description"),
		Users: newEntity[ds.User](db, "user", []string{"Role"},
			"username", "password_hash", "email", "role_id"),
		Categories: newEntity[ds.Category](db, "category", nil,
			"name", "description"),
		Services: newEntity[ds.Service](db, "service", []string{"Category", "CreatedByUser"},
			"name", "description", "category_id", "sla", "status", "created_by"),
		History: newEntity[ds.ServiceHistory](db, "service history", []string{"Service", "ChangedByUser"},
			"service_id", "change_date", "changed_by", "old_value", "new_value"),
		Requests: newEntity[ds.Request](db, "request", []string{"User", "Service"},
			"user_id", "service_id", "request_date", "status", "details"),
	}
}

// Migrate creates or upgrades the six catalog tables together with their
// foreign keys and status CHECK constraints.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("database migration completed")
	return nil
}

// Ping checks that the store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return translate("database", 0, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return translate("database", 0, err)
	}
	return nil
}

// TableCounts returns the number of rows of each catalog table.
func (r *Repository) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(Models()))
	for _, m := range Models() {
		var n int64
		if err := r.db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, translate("database", 0, err)
		}
		counts[m.(ds.Record).TableName()] = n
	}
	return counts, nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
