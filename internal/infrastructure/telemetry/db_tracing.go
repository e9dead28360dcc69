package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls span generation for database statements.
type DBTracingConfig struct {
	Enabled          bool          // emit spans for database statements
	LogFullSQL       bool          // include full SQL text in spans, dev only
	SlowQueryThresh  time.Duration // statements above this get a slow-query event
	DBSystem         string        // reported db.system, "postgresql" by default
	WithoutVariables bool          // strip bind variables from recorded SQL
}

// DefaultDBTracingConfig returns the production-safe defaults: tracing off,
// SQL text and bind variables withheld, 200ms slow threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin installs otelgorm on a GORM instance together with the
// timing callbacks that annotate spans with row counts, table names and
// slow-query events.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin builds a plugin for the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm wires the otelgorm plugin plus the timing callbacks into
// db. A no-op when tracing is disabled. Registering twice on the same
// instance fails because GORM rejects duplicate plugin names.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	// The timing callbacks run around otelgorm's own span handling and add
	// the attributes otelgorm does not record itself.
	cb := NewDBTracingCallback(p.config.SlowQueryThresh)
	if err := cb.RegisterCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)

	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// WithQueryStartTime stamps the statement start time onto ctx. The after
// callback reads it back to compute elapsed time.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}

// DBTracingCallback annotates the active span around each GORM statement:
// rows affected, table name, errors, and a slow-query event when the
// statement exceeds the threshold.
type DBTracingCallback struct {
	slowQueryThresh time.Duration
}

// NewDBTracingCallback builds a callback with the given slow threshold.
func NewDBTracingCallback(slowQueryThresh time.Duration) *DBTracingCallback {
	return &DBTracingCallback{
		slowQueryThresh: slowQueryThresh,
	}
}

// BeforeCallback records the statement start time on the statement context.
func (c *DBTracingCallback) BeforeCallback(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// AfterCallback decorates the span for the finished statement. Safe to call
// without a recording span or without a start time, it just does less.
func (c *DBTracingCallback) AfterCallback(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}

	span := trace.SpanFromContext(db.Statement.Context)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// A missing row is an expected outcome, not a span error.
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := db.Statement.Context.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > c.slowQueryThresh {
			span.SetAttributes(attribute.Bool("db.slow_query", true))
			span.SetAttributes(attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", c.slowQueryThresh.Milliseconds()),
			))
		}
	}
}

// RegisterCallbacks hooks the before/after pair into every GORM operation
// type. Create, Query, Update, Delete, Row and Raw all get the same pair.
func (c *DBTracingCallback) RegisterCallbacks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("otel_timing:before_create", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("otel_timing:after_create", c.AfterCallback); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("otel_timing:before_query", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("otel_timing:after_query", c.AfterCallback); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("otel_timing:before_update", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("otel_timing:after_update", c.AfterCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("otel_timing:before_delete", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("otel_timing:after_delete", c.AfterCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("otel_timing:before_row", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("otel_timing:after_row", c.AfterCallback); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("otel_timing:before_raw", c.BeforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("otel_timing:after_raw", c.AfterCallback); err != nil {
		return err
	}

	return nil
}
