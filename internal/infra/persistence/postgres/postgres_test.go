package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"addrcard/config"
	"addrcard/internal/domain/repository"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqliteOpener(t *testing.T, opened **gorm.DB) Opener {
	t.Helper()

	return func(_ *pgLib.DBConn) (*gorm.DB, error) {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
		if opened != nil {
			*opened = db
		}

		return db, nil
	}
}

func postgresConfig() *config.Config {
	return &config.Config{Postgres: &pgLib.DBConn{}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Lifecycle(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	store, err := New(Params{
		Lifecycle: lc,
		Config:    postgresConfig(),
		Logger:    discardLogger(),
		Opener:    sqliteOpener(t, nil),
	})
	require.NoError(t, err)

	lc.RequireStart()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repository.DefaultRecordKey, []byte(`{"version":3}`)), "record_entries is created on start")

	value, found, err := store.Get(ctx, repository.DefaultRecordKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"version":3}`, string(value))

	lc.RequireStop()

	_, _, err = store.Get(ctx, repository.DefaultRecordKey)
	assert.ErrorIs(t, err, repository.ErrStoreIO, "stopping closes the database")
}

func TestNew_MissingConfig(t *testing.T) {
	_, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    &config.Config{},
		Logger:    discardLogger(),
		Opener:    sqliteOpener(t, nil),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres configuration is required")
}

func TestNew_OpenFails(t *testing.T) {
	_, err := New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    postgresConfig(),
		Logger:    discardLogger(),
		Opener: func(*pgLib.DBConn) (*gorm.DB, error) {
			return nil, sql.ErrConnDone
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestNew_StartFailsWhenDatabaseUnreachable(t *testing.T) {
	var opened *gorm.DB
	lc := fxtest.NewLifecycle(t)
	_, err := New(Params{
		Lifecycle: lc,
		Config:    postgresConfig(),
		Logger:    discardLogger(),
		Opener:    sqliteOpener(t, &opened),
	})
	require.NoError(t, err)

	sqlDB, err := opened.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = lc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping record store database")
}

func TestPoolMonitor_Observe(t *testing.T) {
	var buf bytes.Buffer
	m := &poolMonitor{
		logger: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	ctx := context.Background()

	tests := []struct {
		name      string
		stats     sql.DBStats
		wantLevel string
		wantWaits float64
	}{
		{
			name:  "No waits",
			stats: sql.DBStats{OpenConnections: 1},
		},
		{
			name:      "Short wait",
			stats:     sql.DBStats{WaitCount: 2, WaitDuration: 10 * time.Millisecond},
			wantLevel: "DEBUG",
			wantWaits: 2,
		},
		{
			name:      "Long wait",
			stats:     sql.DBStats{WaitCount: 3, WaitDuration: 80 * time.Millisecond},
			wantLevel: "WARN",
			wantWaits: 1,
		},
		{
			name:  "Unchanged since last sample",
			stats: sql.DBStats{WaitCount: 3, WaitDuration: 80 * time.Millisecond},
		},
	}

	// samples are cumulative, so the cases run in order
	for _, tt := range tests {
		buf.Reset()
		m.observe(ctx, tt.stats)

		if tt.wantLevel == "" {
			assert.Zero(t, buf.Len(), tt.name)

			continue
		}

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line), tt.name)
		assert.Equal(t, tt.wantLevel, line["level"], tt.name)
		assert.Equal(t, "Record store waited for a database connection", line["msg"], tt.name)
		assert.Equal(t, tt.wantWaits, line["waits"], tt.name)
	}
}
