// Zap to OpenTelemetry log bridge. Application logs written through zap
// are mirrored to the OTLP collector when log export is enabled.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsConfig controls whether and where application logs are exported.
type LogsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ServiceName       string
	Insecure          bool
}

// LoggerProvider owns the SDK logger provider and its shutdown.
type LoggerProvider struct {
	provider *sdklog.LoggerProvider
	logger   *zap.Logger
	config   LogsConfig
}

// NewLoggerProvider builds a LoggerProvider exporting over OTLP gRPC.
// With cfg.Enabled false the returned provider is inert and every method
// on it is a no-op, so callers never need to branch on the flag.
func NewLoggerProvider(ctx context.Context, cfg LogsConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("OTEL Logs disabled, using no-op logger provider")
		return lp, nil
	}

	exporterOpts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlploggrpc.WithInsecure())
	}

	exporter, err := otlploggrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
	}

	res, err := serviceResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	lp.provider = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	global.SetLoggerProvider(lp.provider)

	logger.Info("OpenTelemetry LoggerProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	)

	return lp, nil
}

// Shutdown flushes pending records and stops the provider. Bounded to
// ten seconds so a dead collector cannot hang process exit.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.provider == nil {
		lp.logger.Debug("No logger provider to shutdown (logs disabled)")
		return nil
	}

	lp.logger.Info("Shutting down OpenTelemetry LoggerProvider...")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := lp.provider.Shutdown(shutdownCtx); err != nil {
		lp.logger.Error("Error shutting down logger provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown logger provider: %w", err)
	}

	lp.logger.Info("OpenTelemetry LoggerProvider shutdown complete")
	return nil
}

// IsEnabled reports whether log export is active.
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.config.Enabled && lp.provider != nil
}

// GetConfig returns the configuration the provider was built with.
func (lp *LoggerProvider) GetConfig() LogsConfig {
	return lp.config
}

// ForceFlush pushes buffered records to the exporter immediately.
func (lp *LoggerProvider) ForceFlush(ctx context.Context) error {
	if lp.provider == nil {
		return nil
	}
	return lp.provider.ForceFlush(ctx)
}

// GetLoggerProvider exposes the underlying SDK provider, nil when export
// is disabled.
func (lp *LoggerProvider) GetLoggerProvider() *sdklog.LoggerProvider {
	return lp.provider
}

// ZapBridgeConfig configures the zap core that mirrors records to OTEL.
type ZapBridgeConfig struct {
	ServiceName    string
	LoggerProvider *LoggerProvider
	Level          zapcore.Level
}

// NewZapOTELCore returns a zapcore.Core that forwards records to the OTEL
// logger provider. Tee it with the stdout core so every record goes to both
// sinks:
//
//	otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
//	    ServiceName:    "brokerhub-backend",
//	    LoggerProvider: loggerProvider,
//	    Level:          zapcore.InfoLevel,
//	})
//	logger := zap.New(zapcore.NewTee(stdoutCore, otelCore))
func NewZapOTELCore(cfg ZapBridgeConfig) zapcore.Core {
	if cfg.LoggerProvider == nil || !cfg.LoggerProvider.IsEnabled() {
		return zapcore.NewNopCore()
	}

	opts := []otelzap.Option{
		otelzap.WithLoggerProvider(cfg.LoggerProvider.provider),
	}

	core := otelzap.NewCore(cfg.ServiceName, opts...)

	// otelzap has no minimum level of its own, so wrap it when one is set.
	if cfg.Level != zapcore.DebugLevel {
		return &levelFilterCore{
			Core:     core,
			minLevel: cfg.Level,
		}
	}

	return core
}

// levelFilterCore drops records below minLevel before they reach the
// wrapped core.
type levelFilterCore struct {
	zapcore.Core
	minLevel zapcore.Level
}

// Enabled implements zapcore.Core.
func (c *levelFilterCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.minLevel && c.Core.Enabled(lvl)
}

// Check implements zapcore.Core.
func (c *levelFilterCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

// With implements zapcore.Core.
func (c *levelFilterCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelFilterCore{
		Core:     c.Core.With(fields),
		minLevel: c.minLevel,
	}
}

// NewBridgedLogger tees the base core with the OTEL core so records land in
// both the configured output and the collector.
func NewBridgedLogger(baseCore, otelCore zapcore.Core, opts ...zap.Option) *zap.Logger {
	combinedCore := zapcore.NewTee(baseCore, otelCore)
	return zap.New(combinedCore, opts...)
}

// CreateBridgedLoggerFromConfig builds the full logger in one call: base
// core from BaseLoggerConfig plus the OTEL bridge at the same level.
func CreateBridgedLoggerFromConfig(
	baseConfig *BaseLoggerConfig,
	logsProvider *LoggerProvider,
	serviceName string,
) (*zap.Logger, error) {
	baseCore := createBaseCore(baseConfig)

	otelCore := NewZapOTELCore(ZapBridgeConfig{
		ServiceName:    serviceName,
		LoggerProvider: logsProvider,
		Level:          parseLogLevel(baseConfig.Level),
	})

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}

	return NewBridgedLogger(baseCore, otelCore, opts...), nil
}

// BaseLoggerConfig describes the local (non-OTEL) log output.
type BaseLoggerConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or file path
	TimeFormat string // time format string
}

// DefaultBaseLoggerConfig is the development default, console output at info.
func DefaultBaseLoggerConfig() *BaseLoggerConfig {
	return &BaseLoggerConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// createBaseCore assembles the local zap core from config.
func createBaseCore(cfg *BaseLoggerConfig) zapcore.Core {
	level := parseLogLevel(cfg.Level)
	encoder := createLogEncoder(cfg)
	writer := createLogWriter(cfg.Output)

	return zapcore.NewCore(encoder, writer, level)
}

// parseLogLevel maps the configured level string to zapcore.Level,
// defaulting to info.
func parseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// createLogEncoder picks console or JSON encoding per config.
func createLogEncoder(cfg *BaseLoggerConfig) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(cfg.TimeFormat),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	return zapcore.NewJSONEncoder(encoderConfig)
}

// createLogWriter resolves the output sink.
func createLogWriter(output string) zapcore.WriteSyncer {
	switch output {
	case "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	default:
		// File output is not supported, fall back to stdout.
		return zapcore.AddSync(os.Stdout)
	}
}
