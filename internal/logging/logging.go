// Package logging points the standard logger at stderr or a rotating file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where log output goes. An empty File means stderr.
type Config struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Setup installs the configured writer on the standard logger and returns a
// closer for the file, if any.
func Setup(cfg Config) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, err
	}

	w := NewRotatingWriter(cfg)
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	log.Printf("[LOG] Writing logs to %s (max %d MB, %d backups)", w.Filename, w.MaxSize, w.MaxBackups)
	return w, nil
}

// NewRotatingWriter builds the lumberjack writer for cfg, filling defaults.
func NewRotatingWriter(cfg Config) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = 32 // MB
	}
	if w.MaxBackups <= 0 {
		w.MaxBackups = 3
	}
	return w
}
