package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"addrcard/config"
	"addrcard/internal/domain/lifecycle"
	"addrcard/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval    = 5 * time.Second
	poolWaitWarnDuration = 50 * time.Millisecond
)

// Opener opens the gorm connection described by the postgres config
type Opener func(conn *pgLib.DBConn) (*gorm.DB, error)

func openPostgres(conn *pgLib.DBConn) (*gorm.DB, error) {
	return pgLib.New(conn)
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	// Opener defaults to the go-lib postgres client
	Opener Opener `optional:"true"`
}

// New opens the database and returns the record store on it. Starting pings the
// database, creates record_entries and watches the pool; stopping closes it.
func New(params Params) (*RecordStore, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is required for postgres store driver")
	}

	open := params.Opener
	if open == nil {
		open = openPostgres
	}

	db, err := open(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open record store database")
	}
	db = db.Session(&gorm.Session{
		// Every record write is a single upsert statement.
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config.Env.Debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get record store sql.DB")
	}

	store := NewRecordStore(db)
	monitor := &poolMonitor{logger: params.Logger, stats: sqlDB.Stats}
	monitorCtx, stopMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping record store database")
			}
			if err := store.Migrate(ctx); err != nil {
				return err
			}

			go monitor.run(monitorCtx, poolCheckInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopMonitor()

			return errors.Wrap(sqlDB.Close(), "failed to close record store database")
		},
	})

	return store, nil
}

// poolMonitor reports connection pool waits. A single-record store should
// never queue for a connection, so any wait is worth a log line.
type poolMonitor struct {
	logger *slog.Logger
	stats  func() sql.DBStats
	prev   sql.DBStats
}

func (m *poolMonitor) run(ctx context.Context, interval time.Duration) {
	if m.logger == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.prev = m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.observe(ctx, m.stats())
		}
	}
}

// observe logs the waits since the previous sample
func (m *poolMonitor) observe(ctx context.Context, cur sql.DBStats) {
	waits := cur.WaitCount - m.prev.WaitCount
	waited := cur.WaitDuration - m.prev.WaitDuration
	m.prev = cur

	if waits <= 0 {
		return
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarnDuration {
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(ctx, level, "Record store waited for a database connection",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("open_conns", cur.OpenConnections),
		slog.Int("in_use_conns", cur.InUse),
		slog.Int("max_open_conns", cur.MaxOpenConnections),
	)
}
