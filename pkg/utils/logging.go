package utils

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Init builds the process logger from explicit settings, usually the loaded
// config. Only the first call to Init or Logger takes effect.
func Init(logFile, level string) *zap.Logger {
	loggerOnce.Do(func() {
		logger = newLogger(logFile, level)
	})
	return logger
}

// Logger returns the process logger. JSON goes to stdout and, when LOG_FILE
// is set, is also appended to that file. LOG_LEVEL picks the minimum level.
func Logger() *zap.Logger {
	return Init(os.Getenv("LOG_FILE"), os.Getenv("LOG_LEVEL"))
}

func newLogger(logFile, level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}

	if logFile != "" {
		_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), lvl))
		}
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
