package logutil

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init installs the process-wide logger. Called once from main before
// any command runs; commands log through zap's globals after that.
func Init() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	zap.ReplaceGlobals(zap.New(core))
}

// Sync flushes any buffered log entries before the process exits.
func Sync() {
	_ = zap.L().Sync()
}
