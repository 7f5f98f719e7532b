package impl

import (
	"context"
	"log/slog"

	"addrcard/config"
	deliverycontext "addrcard/internal/delivery/context"
	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/repository"
	"addrcard/internal/domain/service"
	"addrcard/internal/errors"
	"addrcard/internal/usecase"

	"go.uber.org/fx"
)

type payloadService struct {
	store     repository.RecordStore
	renderer  service.QRCodeRenderer
	navigator service.Navigator
	metrics   service.UsageMetrics
	key       string
	logger    *slog.Logger
}

// PayloadServiceParams holds dependencies for PayloadService, injected by Fx.
type PayloadServiceParams struct {
	fx.In

	Store     repository.RecordStore
	Renderer  service.QRCodeRenderer
	Navigator service.Navigator
	Metrics   service.UsageMetrics `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPayloadService creates the QR code screen usecase
func NewPayloadService(params PayloadServiceParams) usecase.PayloadUsecase {
	key := repository.DefaultRecordKey
	if params.Config != nil && params.Config.Store != nil && params.Config.Store.Key != "" {
		key = params.Config.Store.Key
	}

	return &payloadService{
		store:     params.Store,
		renderer:  params.Renderer,
		navigator: params.Navigator,
		metrics:   params.Metrics,
		key:       key,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *payloadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *payloadService) Resolve(ctx context.Context) (entity.Resolution, error) {
	raw, found, err := srv.store.Get(ctx, srv.key)
	if err != nil {
		return entity.Resolution{}, errors.Wrap(err, "failed to read stored address")
	}

	resolution := entity.Classify(raw, found, entity.CurrentSchemaVersion)
	if srv.metrics != nil {
		srv.metrics.IncResolution(string(resolution.Status))
	}

	switch resolution.Status {
	case entity.PayloadCurrent:
		return resolution, nil
	case entity.PayloadMalformed:
		srv.log(ctx).WarnContext(ctx, "Stored address is malformed",
			slog.String("key", srv.key),
			slog.Any("error", resolution.Err),
		)
	case entity.PayloadOutdated:
		srv.log(ctx).InfoContext(ctx, "Stored address is outdated",
			slog.Int("stored_version", int(resolution.StoredVersion)),
			slog.Bool("has_version", resolution.HasVersion),
			slog.Int("current_version", int(entity.CurrentSchemaVersion)),
		)
	case entity.PayloadAbsent:
	}

	srv.navigator.GoTo(ctx, entity.ScreenAddress)

	return resolution, nil
}

func (srv *payloadService) Render(ctx context.Context, size int) ([]byte, entity.Resolution, error) {
	resolution, err := srv.Resolve(ctx)
	if err != nil {
		return nil, entity.Resolution{}, err
	}
	if !resolution.Renderable() {
		return nil, resolution, errors.Wrapf(usecase.ErrNotRenderable, "stored address is %s", resolution.Status)
	}

	image, err := srv.renderer.Render(string(resolution.Payload), size)
	if err != nil {
		return nil, resolution, errors.Wrap(err, "failed to render QR code")
	}

	return image, resolution, nil
}
