package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/logger"
)

// DefaultConnectTimeout bounds how long startup waits for the database.
const DefaultConnectTimeout = 30 * time.Second

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	}
}

// New opens the postgres database described by cfg, configures its pool and waits
// until it answers.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*gorm.DB, error) {
	log.Info("connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("user", cfg.DBUser))

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := ConfigurePool(db); err != nil {
		return nil, err
	}

	if err := WaitForDB(ctx, db, DefaultConnectTimeout); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("successfully connected to database")
	return db, nil
}

// OpenDSN opens a postgres connection string through database/sql and hands the pool
// to gorm. Used by the maintenance CLI, which accepts URLs as well as key=value DSNs.
func OpenDSN(ctx context.Context, dsn string, timeout time.Duration) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := WaitForDB(ctx, db, timeout); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}
	return db, nil
}

// WaitForDB pings db with exponential backoff until it answers or timeout elapses.
func WaitForDB(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout
	return backoff.Retry(func() error {
		return HealthCheck(ctx, db)
	}, backoff.WithContext(policy, ctx))
}

// ConfigurePool applies the connection pool settings.
func ConfigurePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
