package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("Expected nil log file when debug=false")
		logFile.Close()
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file when debug=true")
	}
	defer logFile.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	logPath := filepath.Join(logDir, logFileName)
	logger := newLogger(logFile, false, zerolog.DebugLevel)
	logger.Debug().Int("gen", 1).Msg("generation evaluated")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"gen":1`) {
		t.Errorf("Expected debug entry in log file, got %q", data)
	}
}

func TestNewLogger_FileHonoursLevel(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	logger := newLogger(logFile, false, zerolog.WarnLevel)
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %v", logger.GetLevel())
	}
	logger.Info().Int("gen", 2).Msg("generation evaluated")
	logger.Warn().Int("gen", 3).Msg("budget nearly spent")

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(data), `"gen":2`) {
		t.Errorf("Expected info entry filtered at warn level, got %q", data)
	}
	if !strings.Contains(string(data), `"gen":3`) {
		t.Errorf("Expected warn entry in log file, got %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	defer os.RemoveAll(logDir)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_NoStdoutStderr(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer logFile.Close()

	if logFile.Fd() == os.Stdout.Fd() || logFile.Fd() == os.Stderr.Fd() {
		t.Error("Log file should not alias stdout or stderr")
	}
}

func TestNewLogger_InteractiveDiscards(t *testing.T) {
	logger := newLogger(nil, false, zerolog.DebugLevel)
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("Expected disabled logger without a log file, got %v", logger.GetLevel())
	}
}
