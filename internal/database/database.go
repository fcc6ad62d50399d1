package database

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the catalog's GORM handle plus the settings repositories need.
type Database struct {
	*gorm.DB
	config config.DatabaseConfig
}

// Connect opens the Postgres catalog database described by cfg.
func Connect(cfg config.DatabaseConfig) (*Database, error) {
	return Open(postgres.Open(cfg.DSN()), cfg)
}

// Open connects through dialector, sizes the pool, checks the connection and
// migrates the catalog tables when cfg.AutoMigrate is set.
func Open(dialector gorm.Dialector, cfg config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("catalog connection pool: %w", err)
	}
	cfg.ApplyPool(sqlDB)

	d := New(db, cfg)
	if err := d.HealthCheck(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"dialect":        dialector.Name(),
		"max_open_conns": cfg.MaxOpenConns,
	}).Info("Catalog database connected")

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("migrate catalog tables: %w", err)
		}
	}

	return d, nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB, cfg config.DatabaseConfig) *Database {
	return &Database{
		DB:     db,
		config: cfg,
	}
}

// QueryTimeout bounds each repository call that has no deadline of its own.
func (d *Database) QueryTimeout() time.Duration {
	return d.config.QueryTimeout
}

// HealthCheck pings the database, bounded by the configured ping timeout.
func (d *Database) HealthCheck(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	if timeout := d.config.PingTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates the catalog tables. actor_movie is registered as the
// join model of Movie.Actors so its composite key is used.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Movie{}, "Actors", &models.ActorMovie{}); err != nil {
		return fmt.Errorf("setup actor_movie join table: %w", err)
	}

	err := db.AutoMigrate(
		&models.Genre{},
		&models.Movie{},
		&models.Actor{},
		&models.ActorMovie{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logrus.Info("Catalog tables migrated")
	return nil
}
