package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultLogFile = "grace_capture.log"
	maxLogSize     = 5 * 1024 * 1024 // 5MB
)

var (
	file   *os.File
	logger *log.Logger
)

// Init opens the log file next to the working directory, rotating it once
// it exceeds maxLogSize. Safe to call when logging to stderr only is fine;
// failures fall back to stderr.
func Init() {
	logPath := getLogPath()

	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			os.Rename(logPath, logPath+".bak")
		}
	}

	var err error
	file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		logger = log.New(os.Stderr, "", 0)
		return
	}

	logger = log.New(io.MultiWriter(file, os.Stderr), "", 0)
	Info("=== session start ===")
}

// Close flushes and closes the log file.
func Close() {
	if file != nil {
		Info("=== session end ===")
		file.Close()
		file = nil
	}
}

func getLogPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return defaultLogFile
	}
	return filepath.Join(dir, defaultLogFile)
}

func write(level, msg string) {
	line := fmt.Sprintf("%s [%s] %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
	if logger == nil {
		log.Println(line)
		return
	}
	logger.Println(line)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	write("INFO", fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func Warn(format string, args ...interface{}) {
	write("WARN", fmt.Sprintf(format, args...))
}

// Error logs an error.
func Error(format string, args ...interface{}) {
	write("ERROR", fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	write("DEBUG", fmt.Sprintf(format, args...))
}
