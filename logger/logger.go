// Package logger holds the process wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Initialize is called, so library code and tests
// can log unconditionally.
var Logger = zap.NewNop().Sugar()

// Initialize sets up the global logger. Logs go to stderr so that stdout
// only carries command output.
func Initialize(jsonOutput bool, verbose bool) error {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		config.OutputPaths = []string{"stderr"}
		zapLogger, err := config.Build()
		if err != nil {
			return err
		}
		Logger = zapLogger.Sugar()
		return nil
	}

	Logger = New(zapcore.AddSync(os.Stderr), level)
	return nil
}

// New returns a logger writing console lines to ws.
func New(ws zapcore.WriteSyncer, level zapcore.Level) *zap.SugaredLogger {
	return zap.New(zapcore.NewCore(newConsoleEncoder(), ws, level)).Sugar()
}

func newConsoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
