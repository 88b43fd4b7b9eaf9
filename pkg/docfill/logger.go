package docfill

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger     *zap.SugaredLogger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

func initGlobalLogger() {
	globalLoggerOnce.Do(func() {
		config := GetGlobalConfig()
		globalLogger = newLogger(config.LogLevel)
	})
}

// newLogger builds a zap sugared logger at the given level ("debug",
// "info", "warn", "error", "off"). Unknown levels fall back to info.
func newLogger(level string) *zap.SugaredLogger {
	if level == "off" {
		return zap.NewNop().Sugar()
	}

	zapLevel := zapcore.InfoLevel
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	logger, err := config.Build()
	if err != nil {
		// Building the production config only fails on invalid output
		// paths, which the default config does not have.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// SetLogger replaces the global logger. Pass nil to silence all logging.
func SetLogger(logger *zap.SugaredLogger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	globalLogger = logger
}

// GetLogger returns the global logger, initializing it from the global
// configuration on first use.
func GetLogger() *zap.SugaredLogger {
	initGlobalLogger()
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// UpdateLoggerFromConfig rebuilds the global logger based on the current
// global configuration.
func UpdateLoggerFromConfig() {
	initGlobalLogger()
	config := GetGlobalConfig()
	globalLoggerMu.Lock()
	globalLogger = newLogger(config.LogLevel)
	globalLoggerMu.Unlock()
}
