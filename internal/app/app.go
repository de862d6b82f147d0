package app

import (
	"os"
	"time"

	"go-roster/internal/sheetstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	RosterFile   string
	PhotoDir     string
	PhotoBaseURL string
	BackupDir    string
	PhotoTTL     time.Duration
	CleanupEvery time.Duration
}

func loadConfig() Config {
	return Config{
		RosterFile:   getenv("ROSTER_FILE", "data/roster.xlsx"),
		PhotoDir:     getenv("PHOTO_DIR", "data/photos"),
		PhotoBaseURL: getenv("PHOTO_BASE_URL", "/photos"),
		BackupDir:    getenv("BACKUP_DIR", "data/backups"),
		PhotoTTL:     getduration("PHOTO_TTL", 7*24*time.Hour),
		CleanupEvery: getduration("CLEANUP_INTERVAL", time.Hour),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		zap.L().Warn("invalid duration in env, using default",
			zap.String("key", key),
			zap.String("value", v),
		)
		return fallback
	}
	return d
}

// BuildApp opens the roster workbook and registers every module's routes
// and actions. The returned store is the single handle serializing all
// workbook access; the caller closes it on shutdown.
func BuildApp(router *gin.Engine) (*sheetstore.Store, error) {
	cfg := loadConfig()

	store, err := sheetstore.Open(cfg.RosterFile)
	if err != nil {
		return nil, err
	}
	zap.L().Info("workbook ready", zap.String("path", store.Path()))

	registerModules(router, store, cfg)

	return store, nil
}
