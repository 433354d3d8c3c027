package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/mars-lander/parameter"
)

const (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
	maxLogSize  = parameter.MaxLogSize
)

// setupLogging opens logs/lander.log when debug is set
// Returns the opened file for the caller to close, nil when logging is disabled
func setupLogging(debug bool) *os.File {
	if !debug {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)

	// Rotate oversized log, keeping the old one under a timestamped name
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("lander_%s.log", time.Now().Format("20060102_150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return logFile
}

// newLogger builds the structured logger handed to the search and viewer
// The interactive viewer owns the terminal, so without a file nothing is written
func newLogger(logFile *os.File, headless bool, level zerolog.Level) zerolog.Logger {
	switch {
	case logFile != nil:
		return zerolog.New(logFile).Level(level).With().Timestamp().Logger()
	case headless:
		out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	default:
		return zerolog.Nop()
	}
}
