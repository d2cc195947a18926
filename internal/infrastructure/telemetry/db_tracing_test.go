package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edusite/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func setupRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.Nil(t, cfg.TracerProvider)
}

func TestDBTracingConfigFrom(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TelemetryConfig
		driver  string
		enabled bool
		system  string
	}{
		{
			name:    "telemetry off disables db tracing",
			cfg:     config.TelemetryConfig{Enabled: false, DBTraceEnabled: true},
			driver:  config.DriverPostgres,
			enabled: false,
			system:  "postgresql",
		},
		{
			name:    "postgres",
			cfg:     config.TelemetryConfig{Enabled: true, DBTraceEnabled: true},
			driver:  config.DriverPostgres,
			enabled: true,
			system:  "postgresql",
		},
		{
			name:    "sqlite",
			cfg:     config.TelemetryConfig{Enabled: true, DBTraceEnabled: true},
			driver:  config.DriverSQLite,
			enabled: true,
			system:  "sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DBTracingConfigFrom(tt.cfg, tt.driver)
			assert.Equal(t, tt.enabled, got.Enabled)
			assert.Equal(t, tt.system, got.DBSystem)
		})
	}

	t.Run("keeps configured threshold", func(t *testing.T) {
		got := DBTracingConfigFrom(config.TelemetryConfig{DBSlowQueryThresh: time.Second}, config.DriverPostgres)
		assert.Equal(t, time.Second, got.SlowQueryThresh)
	})
}

func TestDBTracingPlugin_RegisterOtelGorm_Disabled(t *testing.T) {
	db := setupTestDB(t)

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	assert.Nil(t, db.Callback().Query().Get("edusite:after_query"))
}

func TestDBTracingPlugin_RegisterOtelGorm_RecordsSpans(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupRecorder(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"
	cfg.TracerProvider = tp

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))
	assert.NotNil(t, db.Callback().Query().Get("edusite:after_query"))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "request")
	tx := db.WithContext(ctx)
	require.NoError(t, tx.Create(&tracedRow{Title: "Go in Action"}).Error)

	var found tracedRow
	require.NoError(t, tx.First(&found, "title = ?", "Go in Action").Error)
	assert.Equal(t, "Go in Action", found.Title)
	parent.End()

	spans := recorder.Ended()
	require.GreaterOrEqual(t, len(spans), 3)

	dbSpans := 0
	for _, s := range spans {
		if s.Parent().SpanID() == parent.SpanContext().SpanID() {
			dbSpans++
		}
	}
	assert.GreaterOrEqual(t, dbSpans, 2)
}

func TestDBTracingPlugin_AfterQuery_Attributes(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupRecorder(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "annotate")
	tx := db.WithContext(ctx)
	tx.Statement.Table = "products"
	tx.Statement.RowsAffected = 3

	plugin.afterQuery(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	table, ok := attrValue(spans[0].Attributes(), "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "products", table.AsString())

	rows, ok := attrValue(spans[0].Attributes(), "db.rows_affected")
	require.True(t, ok)
	assert.Equal(t, int64(3), rows.AsInt64())

	_, slow := attrValue(spans[0].Attributes(), "db.slow_query")
	assert.False(t, slow)
}

func TestDBTracingPlugin_AfterQuery_Error(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status codes.Code
	}{
		{name: "store failure marks span", err: errors.New("disk I/O error"), status: codes.Error},
		{name: "record not found is not an error", err: gorm.ErrRecordNotFound, status: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			tp, recorder := setupRecorder(t)
			plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

			ctx, span := tp.Tracer("test").Start(context.Background(), "failing")
			tx := db.WithContext(ctx)
			tx.Error = tt.err

			plugin.afterQuery(tx)
			span.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.status, spans[0].Status().Code)
		})
	}
}

func TestDBTracingPlugin_AfterQuery_SlowQuery(t *testing.T) {
	db := setupTestDB(t)
	tp, recorder := setupRecorder(t)

	cfg := DefaultDBTracingConfig()
	cfg.SlowQueryThresh = time.Nanosecond
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "slow")
	ctx = WithQueryStartTime(ctx)
	time.Sleep(2 * time.Millisecond)

	plugin.afterQuery(db.WithContext(ctx))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	slow, ok := attrValue(spans[0].Attributes(), "db.slow_query")
	require.True(t, ok)
	assert.True(t, slow.AsBool())

	var events []string
	for _, e := range spans[0].Events() {
		events = append(events, e.Name)
	}
	assert.Contains(t, events, "slow_query_warning")
}

func TestDBTracingPlugin_AfterQuery_NonRecordingSpan(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	assert.NotPanics(t, func() {
		plugin.afterQuery(db.WithContext(context.Background()))
	})
}

func TestWithQueryStartTime(t *testing.T) {
	before := time.Now()
	ctx := WithQueryStartTime(context.Background())

	started, ok := ctx.Value(queryStartTimeKey).(time.Time)
	require.True(t, ok)
	assert.False(t, started.Before(before))
}
