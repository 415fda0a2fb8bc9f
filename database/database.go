package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Dialector picks the database driver from DB_DRIVER. Postgres is the
// default; "sqlite" opens DB_PATH for local development.
func Dialector() gorm.Dialector {
	if getEnv("DB_DRIVER", "postgres") == "sqlite" {
		path := getEnv("DB_PATH", "revivecare.db")
		return sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=on", path))
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=revivecare TimeZone=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "revivecare"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
		getEnv("DB_TIMEZONE", "Asia/Kolkata"),
	)
	return postgres.Open(dsn)
}

// Config returns the gorm configuration shared by the server, the seed tool
// and tests. Foreign keys are created during migration because deletes rely
// on them for cascade and set-null behaviour.
func Config(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Millisecond * 500,
				LogLevel:                  logLevel,
				Colorful:                  true,
				IgnoreRecordNotFoundError: true,
			},
		),
		TranslateError: true,
	}
}

func Open(dialector gorm.Dialector, cfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if db.Dialector.Name() == "sqlite" {
		// SQLite serialises writers anyway; one connection keeps the
		// foreign_keys pragma in effect for every statement.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func ConnectDatabase() {
	db, err := Open(Dialector(), Config(logger.Warn))
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	log.Printf("Connected to %s database successfully", db.Dialector.Name())
	DB = db
}

func MonitorDBConnections() {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			sqlDB, err := DB.DB()
			if err != nil {
				continue
			}
			stats := sqlDB.Stats()
			if stats.MaxOpenConnections > 0 && stats.InUse > stats.MaxOpenConnections*3/4 {
				log.Printf("DB Connection Pool: InUse=%d, Idle=%d, Open=%d",
					stats.InUse, stats.Idle, stats.OpenConnections)
			}
		}
	}()
}

// Ping reports whether the database answers a trivial query.
func Ping(db *gorm.DB) error {
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return err
	}
	if result != 1 {
		return fmt.Errorf("unexpected health check result %d", result)
	}
	return nil
}

// OpenSQLiteMemory opens a private in-memory SQLite database with foreign
// keys enforced and all tables migrated.
func OpenSQLiteMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := Open(sqlite.Open(dsn), Config(logger.Silent))
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate in-memory database: %w", err)
	}
	return db, nil
}
