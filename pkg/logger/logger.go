package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var once sync.Once

var logger atomic.Pointer[zap.SugaredLogger]

// Config controls the process wide logger. File enables a rotated log file in addition to stdout.
type Config struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	JSON       bool   `json:"json" yaml:"json" mapstructure:"json"`
	File       string `json:"file,omitempty" yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMB,omitempty" yaml:"maxSizeMB" mapstructure:"maxSizeMB"`
	MaxBackups int    `json:"maxBackups,omitempty" yaml:"maxBackups" mapstructure:"maxBackups"`
}

// Get initializes a zap.SugaredLogger instance if it has not been initialized
// already and returns the same instance for subsequent calls.
// Without Configure, LOG_LEVEL and JSON_LOG are read from the environment.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		if logger.Load() != nil {
			return
		}

		l, err := build(Config{
			Level: os.Getenv("LOG_LEVEL"),
			JSON:  os.Getenv("JSON_LOG") != "",
		})
		if err != nil {
			log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
		}
		logger.Store(l)
	})

	return logger.Load()
}

// Configure replaces the process wide logger. An invalid level falls back to INFO and is returned as an error.
func Configure(c Config) (*zap.SugaredLogger, error) {
	l, err := build(c)
	logger.Store(l)
	once.Do(func() {})

	return l, err
}

func build(c Config) (*zap.SugaredLogger, error) {
	var levelErr error
	level := zap.InfoLevel
	if c.Level != "" {
		parsed, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			levelErr = err
		} else {
			level = parsed
		}
	}

	logLevel := zap.NewAtomicLevelAt(level)

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encoder := zapcore.NewConsoleEncoder(developmentCfg)
	if c.JSON {
		encoder = zapcore.NewJSONEncoder(productionCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), logLevel)

	if c.File != "" {
		// files never get color codes
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB,
			MaxBackups: c.MaxBackups,
		})
		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(productionCfg), file, logLevel))
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if ok {
		var fields []zapcore.Field
		fields = append(fields, zap.String("go_version", buildInfo.GoVersion))
		for _, v := range buildInfo.Settings {
			if v.Key == "vcs.revision" && len(v.Value) >= 7 {
				fields = append(fields, zap.String("git_revision", v.Value[0:7]))
				break
			}
		}

		core = core.With(fields)
	}

	return zap.New(core).Sugar(), levelErr
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
// Any key value pairs in with are added to the returned logger.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
