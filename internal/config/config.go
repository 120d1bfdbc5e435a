// Package config reads the trackmeta CLI settings from the environment.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

type ConfigStruct struct {
	Catalog CatalogConfig
	Scan    ScanConfig
	Logging LoggingConfig
}

type CatalogConfig struct {
	DBPath string
}

type ScanConfig struct {
	Source          string
	Engine          string // "" means the registry default
	Workers         int
	MaxArtworkBytes int // 0 means no limit
}

type LoggingConfig struct {
	Level log.Level
}

// Load builds a ConfigStruct from TRACKMETA_* variables. Call
// godotenv.Load first to pick up a .env file.
func Load() *ConfigStruct {
	return &ConfigStruct{
		Catalog: CatalogConfig{
			DBPath: getDBPath(),
		},
		Scan: ScanConfig{
			Source:          os.Getenv("TRACKMETA_SOURCE"),
			Engine:          strings.TrimSpace(os.Getenv("TRACKMETA_ENGINE")),
			Workers:         getWorkers(),
			MaxArtworkBytes: getMaxArtworkBytes(),
		},
		Logging: LoggingConfig{
			Level: getLogLevel(),
		},
	}
}

func getDBPath() string {
	if p := os.Getenv("TRACKMETA_DB_PATH"); p != "" {
		return p
	}
	return "trackmeta.db"
}

func getWorkers() int {
	workersStr := os.Getenv("TRACKMETA_WORKERS")
	if workersStr == "" {
		return defaultWorkers()
	}
	workers, err := strconv.Atoi(workersStr)
	if err != nil || workers <= 0 {
		return defaultWorkers()
	}
	if workers > 64 {
		return 64
	}
	return workers
}

func defaultWorkers() int {
	return min(runtime.NumCPU(), 64)
}

func getMaxArtworkBytes() int {
	sizeStr := os.Getenv("TRACKMETA_MAX_ARTWORK_BYTES")
	if sizeStr == "" {
		return 0
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 0 {
		return 0
	}
	return size
}

func getLogLevel() log.Level {
	level, err := log.ParseLevel(os.Getenv("TRACKMETA_LOG_LEVEL"))
	if err != nil {
		return log.WarnLevel
	}
	return level
}
