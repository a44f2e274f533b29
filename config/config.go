package config

import (
	"os"
	"strings"

	"dog-walk-service/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port      string
	DBPath    string
	GinMode   string
	JWTSecret []byte
}

// Load reads configuration from .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}
	return Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "dog_walk_service.db"),
		GinMode:   os.Getenv("GIN_MODE"),
		JWTSecret: []byte(getEnv("JWT_SECRET", "dog_walk_super_secret_2025")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Open connects to the database and migrates all models.
// Foreign key enforcement is on so dangling Dog/WalkRequest/WalkApplication
// rows fail at the storage layer rather than surfacing later as bad joins.
func Open(cfg Config) (*gorm.DB, error) {
	dsn := cfg.DBPath
	if strings.Contains(dsn, "?") {
		dsn += "&"
	} else {
		dsn += "?"
	}
	// busy_timeout bounds how long a write waits on a locked database before
	// failing, so callers see an error instead of blocking indefinitely
	dsn += "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Dog{},
		&models.WalkRequest{},
		&models.WalkApplication{},
		&models.WalkRating{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
