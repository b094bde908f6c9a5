package config

import (
	"fmt"
	"time"
)

// SQLiteConfig defines the configuration for the embedded market database.
type SQLiteConfig struct {
	Path        string        `mapstructure:"path"`
	BusyTimeout time.Duration `mapstructure:"busy_timeout"`
}

// DSN builds the SQLite connection string for the configured database file.
// The busy timeout keeps concurrent maintenance runs from failing fast on
// a locked file.
func (cfg *SQLiteConfig) DSN() string {
	dsn := fmt.Sprintf("file:%s", cfg.Path)

	if cfg.BusyTimeout > 0 {
		dsn += fmt.Sprintf("?_busy_timeout=%d", cfg.BusyTimeout.Milliseconds())
	}

	return dsn
}
