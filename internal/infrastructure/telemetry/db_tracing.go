package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans; development only
	SlowQueryThresh time.Duration // queries slower than this are flagged on their span
	DBSystem        string
	// TracerProvider defaults to the global provider
	TracerProvider trace.TracerProvider
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:         false,
		LogFullSQL:      false,
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingConfigFrom builds the database tracing settings for the configured driver
func DBTracingConfigFrom(cfg config.TelemetryConfig, driver string) DBTracingConfig {
	out := DefaultDBTracingConfig()
	out.Enabled = cfg.Enabled && cfg.DBTraceEnabled
	out.LogFullSQL = cfg.DBLogFullSQL
	if cfg.DBSlowQueryThresh > 0 {
		out.SlowQueryThresh = cfg.DBSlowQueryThresh
	}
	if driver == config.DriverSQLite {
		out.DBSystem = "sqlite"
	}
	return out
}

// DBTracingPlugin registers otelgorm plus slow query and error marking callbacks.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// RegisterOtelGorm registers the otelgorm plugin and the timing callbacks on db.
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
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

// registerCallbacks wraps every gorm operation with start time and span annotation callbacks.
// The after callbacks run before otelgorm ends its span.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("edusite:before_create", beforeQuery),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("edusite:after_create", p.afterQuery),
		cb.Query().Before("gorm:query").Register("edusite:before_query", beforeQuery),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("edusite:after_query", p.afterQuery),
		cb.Update().Before("gorm:update").Register("edusite:before_update", beforeQuery),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("edusite:after_update", p.afterQuery),
		cb.Delete().Before("gorm:delete").Register("edusite:before_delete", beforeQuery),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("edusite:after_delete", p.afterQuery),
		cb.Row().Before("gorm:row").Register("edusite:before_row", beforeQuery),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("edusite:after_row", p.afterQuery),
		cb.Raw().Before("gorm:raw").Register("edusite:before_raw", beforeQuery),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("edusite:after_raw", p.afterQuery),
	)
}

// afterQuery annotates the current span with rows, table, errors and slow query flags.
func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

func beforeQuery(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = WithQueryStartTime(db.Statement.Context)
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// WithQueryStartTime returns a context with the query start time set.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}
