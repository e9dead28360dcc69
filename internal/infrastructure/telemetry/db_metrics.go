// Database metrics: query counters and latency histograms recorded via a
// GORM plugin, plus a background sampler for connection pool stats.
package telemetry

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig controls database metrics collection.
type DBMetricsConfig struct {
	Enabled            bool
	SlowQueryThreshold time.Duration // queries above this increment db_slow_query_total
	PoolStatsInterval  time.Duration // pool stats sampling period
}

// DefaultDBMetricsConfig enables collection with a 200ms slow threshold and
// 15s pool sampling.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 200 * time.Millisecond,
		PoolStatsInterval:  15 * time.Second,
	}
}

// DBMetrics owns the database instruments and the pool stats sampler.
type DBMetrics struct {
	poolConnections    *Gauge // db_pool_connections, labelled by state
	poolConnectionsMax *Gauge // db_pool_connections_max

	queryTotal     *Counter   // db_query_total
	queryDuration  *Histogram // db_query_duration_seconds
	slowQueryTotal *Counter   // db_slow_query_total

	config   DBMetricsConfig
	logger   *zap.Logger
	sqlDB    *sql.DB
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopOnce sync.Once
}

// NewDBMetrics registers the database instruments on meter. Zero config
// fields fall back to the defaults.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.SlowQueryThreshold == 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	poolConnections, err := NewGauge(
		meter,
		"db_pool_connections",
		"Number of connections in the pool by state",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	poolConnectionsMax, err := NewGauge(
		meter,
		"db_pool_connections_max",
		"Maximum number of connections in the pool",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	queryTotal, err := NewCounter(
		meter,
		"db_query_total",
		"Total number of database queries by operation type",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	slowQueryTotal, err := NewCounter(
		meter,
		"db_slow_query_total",
		"Total number of slow database queries (>200ms by default)",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		poolConnections:    poolConnections,
		poolConnectionsMax: poolConnectionsMax,
		queryTotal:         queryTotal,
		queryDuration:      queryDuration,
		slowQueryTotal:     slowQueryTotal,
		config:             cfg,
		logger:             logger,
		stopCh:             make(chan struct{}),
	}, nil
}

// SetSQLDB hands over the sql.DB whose pool will be sampled. Required
// before StartPoolStatsCollection.
func (m *DBMetrics) SetSQLDB(sqlDB *sql.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sqlDB = sqlDB
}

// StartPoolStatsCollection launches the pool sampler goroutine. It samples
// once immediately, then on every tick until Stop or ctx cancellation.
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		m.logger.Warn("Cannot start pool stats collection: sqlDB not set")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.collectPoolStats(ctx)

		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx)
			case <-m.stopCh:
				m.logger.Debug("Stopping pool stats collection")
				return
			case <-ctx.Done():
				m.logger.Debug("Pool stats collection context cancelled")
				return
			}
		}
	}()

	m.logger.Info("Started database connection pool stats collection",
		zap.Duration("interval", m.config.PoolStatsInterval),
	)
}

// collectPoolStats records one pool snapshot.
func (m *DBMetrics) collectPoolStats(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		return
	}

	stats := sqlDB.Stats()

	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))

	// OpenConnections = Idle + InUse. WaitCount is cumulative rather than a
	// current state, so it is not sampled here.
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop terminates the sampler and waits for it. Idempotent.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
		m.logger.Debug("Database metrics stopped")
	})
}

// RecordQuery updates the query counter and latency histogram, and the
// slow-query counter when duration crosses the threshold.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation string, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}

	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))

	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if duration > m.config.SlowQueryThreshold {
		tableName := table
		if tableName == "" {
			tableName = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(tableName))
	}
}

// DBMetricsPlugin is the GORM plugin that feeds RecordQuery from the
// statement lifecycle callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
	logger  *zap.Logger
}

// NewDBMetricsPlugin wraps metrics in a GORM plugin.
func NewDBMetricsPlugin(metrics *DBMetrics, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBMetricsPlugin{
		metrics: metrics,
		logger:  logger,
	}
}

// Name implements gorm.Plugin.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize implements gorm.Plugin by hooking the timing callbacks into
// every operation type.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	if err := p.registerBeforeCallbacks(db); err != nil {
		return err
	}

	if err := p.registerAfterCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database metrics plugin initialized")
	return nil
}

// registerBeforeCallbacks stamps the start time onto the statement context.
func (p *DBMetricsPlugin) registerBeforeCallbacks(db *gorm.DB) error {
	beforeCallback := func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		db.Statement.Context = context.WithValue(
			ctx,
			dbMetricsStartTimeKey,
			time.Now(),
		)
	}

	if err := db.Callback().Create().Before("gorm:create").Register("db_metrics:before_create", beforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("db_metrics:before_query", beforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("db_metrics:before_update", beforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("db_metrics:before_delete", beforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("db_metrics:before_row", beforeCallback); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("db_metrics:before_raw", beforeCallback); err != nil {
		return err
	}

	return nil
}

// registerAfterCallbacks records a metric per finished statement. Create,
// Query, Update and Delete map directly to their SQL verbs; Row and Raw
// sniff the verb from the statement text.
func (p *DBMetricsPlugin) registerAfterCallbacks(db *gorm.DB) error {
	createCallback := func(db *gorm.DB) {
		p.recordMetrics(db, "INSERT")
	}
	queryCallback := func(db *gorm.DB) {
		p.recordMetrics(db, "SELECT")
	}
	updateCallback := func(db *gorm.DB) {
		p.recordMetrics(db, "UPDATE")
	}
	deleteCallback := func(db *gorm.DB) {
		p.recordMetrics(db, "DELETE")
	}
	rawCallback := func(db *gorm.DB) {
		p.recordMetrics(db, detectOperationType(db.Statement.SQL.String()))
	}

	if err := db.Callback().Create().After("gorm:create").Register("db_metrics:after_create", createCallback); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("db_metrics:after_query", queryCallback); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("db_metrics:after_update", updateCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("db_metrics:after_delete", deleteCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("db_metrics:after_row", rawCallback); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("db_metrics:after_raw", rawCallback); err != nil {
		return err
	}

	return nil
}

// recordMetrics derives duration and table from the statement and hands
// off to RecordQuery.
func (p *DBMetricsPlugin) recordMetrics(db *gorm.DB, operation string) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var duration time.Duration
	if startTime, ok := ctx.Value(dbMetricsStartTimeKey).(time.Time); ok {
		duration = time.Since(startTime)
	}

	table := db.Statement.Table

	p.metrics.RecordQuery(ctx, operation, table, duration, db.Error)
}

// detectOperationType sniffs the SQL verb from raw statement text.
func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))

	switch {
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "OTHER"
	}
}

type dbMetricsContextKey string

const dbMetricsStartTimeKey dbMetricsContextKey = "db_metrics_start_time"

// RegisterDBMetrics builds the instruments and installs the plugin on db in
// one call. Returns nil without error when metrics are disabled or no meter
// provider is available. Callers own the returned DBMetrics and must Stop
// it on shutdown.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil, nil
	}

	if meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("MeterProvider not available, skipping database metrics")
		return nil, nil
	}

	meter := meterProvider.Meter("db.client")

	metrics, err := NewDBMetrics(meter, cfg, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	metrics.SetSQLDB(sqlDB)

	plugin := NewDBMetricsPlugin(metrics, logger)
	if err := db.Use(plugin); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
		zap.Duration("pool_stats_interval", cfg.PoolStatsInterval),
	)

	return metrics, nil
}
