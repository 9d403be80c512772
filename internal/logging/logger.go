package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a development logger by default. In release mode it writes JSON
// to stdout and to a rotating file under logs/.
func New() (*zap.Logger, error) {
	level := zap.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		parsed, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	if os.Getenv("GIN_MODE") != "release" {
		cfg := zap.NewDevelopmentConfig()
		if os.Getenv("LOG_LEVEL") != "" {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
		return cfg.Build()
	}

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, err
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   "logs/examflow-worker.log",
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}),
		),
		level,
	)
	return zap.New(core, zap.Fields(zap.String("component", "examflow-worker"))), nil
}
