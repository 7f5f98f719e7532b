package main

import (
	"context"
	"log/slog"
	"os"

	"addrcard/config"
	"addrcard/internal/delivery"
	"addrcard/internal/delivery/api"
	"addrcard/internal/delivery/api/router/handler"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/infra/i18n"
	logs "addrcard/internal/infra/log"
	"addrcard/internal/infra/metrics"
	"addrcard/internal/infra/navigation"
	"addrcard/internal/infra/persistence"
	"addrcard/internal/infra/qrcode"
	"addrcard/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		persistence.Module,
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newValidator,
			newQRCodeService,
			newUsageMetrics,
			i18n.NewFromConfig,
			navigation.New,
		),
	)
}

// newValidator builds the field validator for the configured phone rule
func newValidator(cfg *config.Config) (*validation.Validator, error) {
	return validation.New(validation.PhonePolicy(cfg.Schema.PhoneRule))
}

// newQRCodeService creates a QR code renderer with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeRenderer {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func newUsageMetrics(m *metrics.Metrics) service.UsageMetrics {
	return m
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAddressService,
			impl.NewAddressControllerFactory,
			impl.NewPayloadService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAddressHandler,
			handler.NewQRCodeHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
