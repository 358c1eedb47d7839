// Package logger configures the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/config"
)

// maxLogSize 超过后在打开时轮转
const maxLogSize = 10 * 1024 * 1024

var (
	logFile *os.File
	logPath string
)

// Init 按配置设置级别、格式和输出
func Init(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05.000"})
	}

	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return nil
	}

	out, err := openRotated(cfg.File)
	if err != nil {
		return err
	}
	logFile, logPath = out, cfg.File
	log.SetOutput(io.MultiWriter(os.Stdout, out))
	log.WithField("path", logPath).Info("📝 logging to file")
	return nil
}

// openRotated opens path for appending, moving it aside first when it has
// grown past maxLogSize.
func openRotated(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		backup := fmt.Sprintf("%s.%d", path, time.Now().Unix())
		if err := os.Rename(path, backup); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Close 关闭日志文件
func Close() {
	if logFile != nil {
		log.SetOutput(os.Stdout)
		_ = logFile.Close()
		logFile = nil
	}
}

// LogPanic logs a recovered panic with its stack trace.
func LogPanic(r any) {
	log.WithField("stack", string(debug.Stack())).Errorf("💥 panic: %v", r)
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	return logPath
}
