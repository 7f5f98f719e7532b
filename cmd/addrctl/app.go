package main

import (
	"context"
	"log/slog"
	"os"

	"addrcard/config"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/infra/i18n"
	logs "addrcard/internal/infra/log"
	"addrcard/internal/infra/metrics"
	"addrcard/internal/infra/navigation"
	"addrcard/internal/infra/persistence"
	"addrcard/internal/infra/qrcode"
	"addrcard/internal/usecase"
	"addrcard/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type cliParams struct {
	fx.In

	Addresses   usecase.AddressUsecase
	Controllers usecase.AddressControllerFactory
	Payloads    usecase.PayloadUsecase
	Translator  *i18n.Translator
}

func newCLI(params cliParams) *cli {
	return &cli{
		addresses:   params.Addresses,
		controllers: params.Controllers,
		payloads:    params.Payloads,
		translator:  params.Translator,
		out:         os.Stdout,
	}
}

// withCLI starts the dependency graph, runs fn and stops the graph again,
// closing the record store
func withCLI(ctx context.Context, fn func(c *cli) error) error {
	var c *cli
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			newLogger,
			func() context.Context { return ctx },
			metrics.New,
			newValidator,
			newQRCodeService,
			i18n.NewFromConfig,
			func() service.Navigator { return navigation.NewWriter(os.Stdout) },
			impl.NewAddressService,
			impl.NewAddressControllerFactory,
			impl.NewPayloadService,
			newCLI,
		),
		persistence.Module,
		fx.Populate(&c),
	)

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start")
	}

	runErr := fn(c)

	if err := app.Stop(ctx); err != nil && runErr == nil {
		return errors.Wrap(err, "failed to stop")
	}

	return runErr
}

// newLogger keeps stdout for command output
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logs.NewWithWriter(cfg, os.Stderr)
}

func newValidator(cfg *config.Config) (*validation.Validator, error) {
	return validation.New(validation.PhonePolicy(cfg.Schema.PhoneRule))
}

func newQRCodeService(cfg *config.Config) service.QRCodeRenderer {
	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}
