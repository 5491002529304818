package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the process-wide structured logger. Workers and the store
// server log to stderr so worker output never bleeds into the report or the
// progress bar on stdout. Verbosity above 1 lowers the level to debug.
func New(verbosity int) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	level := zapcore.WarnLevel
	if verbosity > 1 {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
