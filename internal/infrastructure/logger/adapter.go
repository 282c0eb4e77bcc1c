package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"analyst-agent/internal/application/port/output"

	"go.uber.org/zap"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

// LoggerAdapter backs LoggerPort with a zap SugaredLogger writing JSON lines
// to a per-process file under ./log.
type LoggerAdapter struct {
	sugar *zap.SugaredLogger
}

func NewLoggerAdapter() (*LoggerAdapter, error) {
	if err := os.MkdirAll("log", 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	filename := filepath.Join("log", time.Now().Format("2006-01-02_15-04-05")+".log")

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filename}
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &LoggerAdapter{sugar: zl.Sugar()}, nil
}

// NewNopAdapter discards everything. Used by tests.
func NewNopAdapter() *LoggerAdapter {
	return &LoggerAdapter{sugar: zap.NewNop().Sugar()}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, args...) }
func (l *LoggerAdapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, args...) }
func (l *LoggerAdapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, args...) }
func (l *LoggerAdapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, args...) }

func (l *LoggerAdapter) WithField(key string, value any) output.LoggerPort {
	return &LoggerAdapter{sugar: l.sugar.With(key, value)}
}

func (l *LoggerAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &LoggerAdapter{sugar: l.sugar.With(args...)}
}

func (l *LoggerAdapter) Close() error {
	return l.sugar.Sync()
}
