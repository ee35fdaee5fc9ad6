package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the console logger used for run progress and diagnostics.
func New(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

// FailureLog is the append-only file recording the failures of one run.
type FailureLog struct {
	path   string
	file   afero.File
	logger *zap.Logger
}

// FileName is the failure log name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("import_log_%s.txt", t.Format("20060102_150405"))
}

// OpenFailureLog creates dir if needed and opens the run's log file in
// append mode.
func OpenFailureLog(fs afero.Fs, dir string, startedAt time.Time) (*FailureLog, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(startedAt))
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(file), zapcore.DebugLevel)

	return &FailureLog{path: path, file: file, logger: zap.New(core)}, nil
}

func (l *FailureLog) Path() string {
	return l.path
}

// RowFailed records one row that could not be imported.
func (l *FailureLog) RowFailed(orderNumber string, err error) {
	l.logger.Error("customer import failed",
		zap.String("order_number", orderNumber),
		zap.String("error", err.Error()),
	)
}

// RunFailed records an error that aborted the run.
func (l *FailureLog) RunFailed(err error) {
	l.logger.Error("import aborted", zap.String("error", err.Error()))
}

func (l *FailureLog) Close() error {
	_ = l.logger.Sync()
	return l.file.Close()
}
