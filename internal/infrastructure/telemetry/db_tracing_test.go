package telemetry

import (
	"context"
	"testing"
	"time"

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

	"github.com/oficina/backend/internal/infrastructure/config"
)

type tracedPart struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:50"`
}

func setupTracedDB(t *testing.T, cfg DBTracingConfig) (*gorm.DB, *tracetest.SpanRecorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&tracedPart{}))

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	require.NoError(t, NewDBTracingPlugin(cfg, tp, zap.NewNop()).Register(db))
	return db, sr
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestDBTracingConfigFrom(t *testing.T) {
	cfg := DBTracingConfigFrom(
		config.TelemetryConfig{Enabled: true, DBTraceEnabled: true},
		config.DatabaseConfig{Driver: "sqlite"},
	)
	assert.True(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, "sqlite", cfg.DBSystem)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)

	cfg = DBTracingConfigFrom(
		config.TelemetryConfig{Enabled: false, DBTraceEnabled: true, DBSlowQueryThresh: time.Second},
		config.DatabaseConfig{Driver: "postgres"},
	)
	assert.False(t, cfg.Enabled, "db tracing needs telemetry enabled")
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.Equal(t, time.Second, cfg.SlowQueryThresh)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db, sr := setupTracedDB(t, DBTracingConfig{Enabled: false})

	require.NoError(t, db.Create(&tracedPart{Code: "FLT-001"}).Error)
	assert.Empty(t, sr.Ended())
}

func TestDBTracingPlugin_AnnotatesSpans(t *testing.T) {
	db, sr := setupTracedDB(t, DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Hour,
		DBSystem:        "sqlite",
	})

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedPart{Code: "FLT-001"}).Error)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	attrs := spanAttrs(spans[len(spans)-1])
	assert.Equal(t, int64(1), attrs["db.rows_affected"].AsInt64())
	assert.Equal(t, "traced_parts", attrs["db.sql.table"].AsString())
	_, slow := attrs["db.slow_query"]
	assert.False(t, slow)
}

func TestDBTracingPlugin_SlowQuery(t *testing.T) {
	db, sr := setupTracedDB(t, DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: -1,
		DBSystem:        "sqlite",
	})

	var parts []tracedPart
	require.NoError(t, db.WithContext(context.Background()).Find(&parts).Error)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	attrs := spanAttrs(spans[len(spans)-1])
	assert.True(t, attrs["db.slow_query"].AsBool())

	var warned bool
	for _, e := range spans[len(spans)-1].Events() {
		if e.Name == "slow_query_warning" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestDBTracingPlugin_Error(t *testing.T) {
	db, sr := setupTracedDB(t, DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Hour,
		DBSystem:        "sqlite",
	})

	err := db.WithContext(context.Background()).Exec("SELECT * FROM missing_table").Error
	require.Error(t, err)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	assert.Equal(t, codes.Error, spans[len(spans)-1].Status().Code)
}

func TestDBTracingPlugin_RecordNotFoundIsNotAnError(t *testing.T) {
	db, sr := setupTracedDB(t, DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Hour,
		DBSystem:        "sqlite",
	})

	var part tracedPart
	err := db.WithContext(context.Background()).First(&part, "code = ?", "NONE").Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	assert.NotEqual(t, codes.Error, spans[len(spans)-1].Status().Code)
}

func TestDBTracingPlugin_DoubleRegistration(t *testing.T) {
	db, _ := setupTracedDB(t, DBTracingConfig{Enabled: true, SlowQueryThresh: time.Hour})

	err := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, nil, zap.NewNop()).Register(db)
	assert.Error(t, err)
}
