package persistence

import (
	"context"
	"log/slog"

	"addrcard/config"
	"addrcard/internal/domain/repository"
	"addrcard/internal/errors"
	"addrcard/internal/infra/metrics"
	"addrcard/internal/infra/persistence/blob"
	"addrcard/internal/infra/persistence/memory"
	"addrcard/internal/infra/persistence/postgres"
	redisstore "addrcard/internal/infra/persistence/redis"

	"go.uber.org/fx"
)

// StoreParams holds dependencies for the RecordStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc      fx.Lifecycle
	Ctx     context.Context
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewRecordStore opens the record store selected by store.driver
func NewRecordStore(params StoreParams) (repository.RecordStore, error) {
	cfg := params.Config.Store
	logger := params.Logger

	if cfg == nil {
		return nil, errors.New("store configuration is required")
	}

	var store repository.RecordStore

	switch cfg.Driver {
	case config.StoreDriverMemory:
		logger.Info("Using in-memory record store, records are lost on exit")

		store = memory.New()

	case config.StoreDriverBlob:
		logger.Info("Using blob record store", slog.String("url", cfg.Blob.URL))

		blobStore, err := blob.Open(params.Ctx, cfg.Blob.URL)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				logger.Info("Closing blob record store")

				return blobStore.Close()
			},
		})
		store = blobStore

	case config.StoreDriverRedis:
		logger.Info("Using redis record store", slog.String("key_prefix", cfg.Redis.KeyPrefix))

		client, err := redisstore.NewClient(params.Ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisStore := redisstore.NewStore(client, cfg.Redis.KeyPrefix)
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				logger.Info("Closing redis record store")

				return redisStore.Close()
			},
		})
		store = redisStore

	case config.StoreDriverPostgres:
		logger.Info("Using postgres record store")

		pgStore, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		store = pgStore

	default:
		return nil, errors.Errorf("unknown store driver: %s", cfg.Driver)
	}

	return NewSerialized(NewInstrumented(store, cfg.Driver, params.Metrics, logger)), nil
}

// Module provides the record store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRecordStore),
)
