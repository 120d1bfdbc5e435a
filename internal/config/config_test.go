package config

import (
	"runtime"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestGetWorkers(t *testing.T) {
	def := min(runtime.NumCPU(), 64)

	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", def},
		{"invalid", "many", def},
		{"zero", "0", def},
		{"negative", "-4", def},
		{"min", "1", 1},
		{"mid", "8", 8},
		{"max", "64", 64},
		{"over", "65", 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRACKMETA_WORKERS", tt.env)
			if got := getWorkers(); got != tt.want {
				t.Errorf("getWorkers() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetMaxArtworkBytes(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 0},
		{"invalid", "big", 0},
		{"negative", "-1", 0},
		{"zero", "0", 0},
		{"valid", "1048576", 1048576},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRACKMETA_MAX_ARTWORK_BYTES", tt.env)
			if got := getMaxArtworkBytes(); got != tt.want {
				t.Errorf("getMaxArtworkBytes() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want log.Level
	}{
		{"empty", "", log.WarnLevel},
		{"invalid", "loud", log.WarnLevel},
		{"debug", "debug", log.DebugLevel},
		{"upper", "INFO", log.InfoLevel},
		{"error", "error", log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TRACKMETA_LOG_LEVEL", tt.env)
			if got := getLogLevel(); got != tt.want {
				t.Errorf("getLogLevel() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TRACKMETA_DB_PATH", "/tmp/catalog.db")
	t.Setenv("TRACKMETA_SOURCE", "nas")
	t.Setenv("TRACKMETA_ENGINE", " gotag ")
	t.Setenv("TRACKMETA_WORKERS", "3")
	t.Setenv("TRACKMETA_MAX_ARTWORK_BYTES", "2048")
	t.Setenv("TRACKMETA_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Catalog.DBPath != "/tmp/catalog.db" {
		t.Errorf("DBPath = %q", cfg.Catalog.DBPath)
	}
	if cfg.Scan.Source != "nas" || cfg.Scan.Engine != "gotag" {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
	if cfg.Scan.Workers != 3 || cfg.Scan.MaxArtworkBytes != 2048 {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
	if cfg.Logging.Level != log.DebugLevel {
		t.Errorf("Level = %v", cfg.Logging.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"TRACKMETA_DB_PATH", "TRACKMETA_SOURCE", "TRACKMETA_ENGINE",
		"TRACKMETA_WORKERS", "TRACKMETA_MAX_ARTWORK_BYTES", "TRACKMETA_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Catalog.DBPath != "trackmeta.db" {
		t.Errorf("DBPath = %q, want trackmeta.db", cfg.Catalog.DBPath)
	}
	if cfg.Scan.Source != "" || cfg.Scan.Engine != "" {
		t.Errorf("Scan = %+v", cfg.Scan)
	}
	if cfg.Logging.Level != log.WarnLevel {
		t.Errorf("Level = %v", cfg.Logging.Level)
	}
}
