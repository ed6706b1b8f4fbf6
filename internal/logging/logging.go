// Package logging builds the structured zap logger used to trace a
// single render call: one correlation ID per Render invocation, fed
// every warning the command/token/raster layers surface along the way.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"zplrender/internal/config"
	"zplrender/internal/rendererr"
)

// New builds a zap.Logger from a logging profile.
func New(cfg *config.LoggingConfig) (*zap.Logger, error) {
	encoderConfig := encoderConfigFor(cfg.Format)

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	writer, err := writeSyncerFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create log writer: %w", err)
	}

	level, err := levelFor(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func encoderConfigFor(format string) zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	ec.LevelKey = "level"
	ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	ec.MessageKey = "message"
	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	}
	return ec
}

func writeSyncerFor(cfg *config.LoggingConfig) (zapcore.WriteSyncer, error) {
	switch cfg.Output {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	default:
		if dir := filepath.Dir(cfg.Output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}), nil
	}
}

func levelFor(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", s)
	}
}

// RenderLogger traces one Render call end to end under a single
// correlation ID, the way the teacher's OperationLogger traces one
// device operation.
type RenderLogger struct {
	logger    *zap.Logger
	renderID  string
	startTime time.Time
}

// NewRenderLogger derives a RenderLogger from a base logger, minting a
// fresh correlation ID for this call.
func NewRenderLogger(base *zap.Logger) *RenderLogger {
	id := uuid.NewString()
	return &RenderLogger{
		logger:    base.With(zap.String("render_id", id), zap.String("component", "render")),
		renderID:  id,
		startTime: time.Now(),
	}
}

// RenderID returns the correlation ID assigned to this render call.
func (rl *RenderLogger) RenderID() string { return rl.renderID }

// Start logs the beginning of a render call.
func (rl *RenderLogger) Start(sourceBytes int) {
	rl.logger.Info("render started", zap.Int("source_bytes", sourceBytes))
}

// Warning logs one non-fatal warning surfaced during the render.
func (rl *RenderLogger) Warning(w *rendererr.Warning) {
	rl.logger.Warn("render warning",
		zap.String("kind", rendererr.Message(w.Kind)),
		zap.Int("offset", w.Offset),
		zap.String("detail", w.Detail),
	)
}

// Success logs a completed render, with its element and warning counts.
func (rl *RenderLogger) Success(elementCount, warningCount int) {
	rl.logger.Info("render completed",
		zap.Duration("duration", time.Since(rl.startTime)),
		zap.Int("element_count", elementCount),
		zap.Int("warning_count", warningCount),
	)
}

// Failure logs a render that returned a fatal error.
func (rl *RenderLogger) Failure(err error) {
	rl.logger.Error("render failed",
		zap.Duration("duration", time.Since(rl.startTime)),
		zap.Error(err),
	)
}
