package impl

import (
	"context"
	"log/slog"

	"addrcard/config"
	deliverycontext "addrcard/internal/delivery/context"
	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/repository"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/errors"
	"addrcard/internal/usecase"

	"go.uber.org/fx"
)

// Submission outcomes counted by UsageMetrics
const (
	submissionSaved   = "saved"
	submissionInvalid = "invalid"
	submissionFailed  = "failed"
)

type addressService struct {
	store     repository.RecordStore
	validator *validation.Validator
	metrics   service.UsageMetrics
	key       string
	logger    *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	Store     repository.RecordStore
	Validator *validation.Validator
	Metrics   service.UsageMetrics `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAddressService creates the address usecase over the record store
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	key := repository.DefaultRecordKey
	if params.Config != nil && params.Config.Store != nil && params.Config.Store.Key != "" {
		key = params.Config.Store.Key
	}

	return &addressService{
		store:     params.Store,
		validator: params.Validator,
		metrics:   params.Metrics,
		key:       key,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Load reads the stored record. A value that cannot be decoded is reported as
// LoadMalformed with empty fields.
func (srv *addressService) Load(ctx context.Context) (*usecase.LoadedAddress, error) {
	raw, found, err := srv.store.Get(ctx, srv.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load address")
	}
	if !found || len(raw) == 0 {
		return &usecase.LoadedAddress{Status: usecase.LoadAbsent}, nil
	}

	record, err := entity.Deserialize(raw)
	if err != nil {
		srv.log(ctx).WarnContext(ctx, "Stored address is malformed, treating it as absent",
			slog.String("key", srv.key),
			slog.Any("error", err),
		)

		return &usecase.LoadedAddress{Status: usecase.LoadMalformed}, nil
	}

	return &usecase.LoadedAddress{
		Status:        usecase.LoadLoaded,
		Fields:        record.Fields,
		StoredVersion: record.Version,
		HasVersion:    record.HasVersion,
		Outdated:      !record.HasVersion || entity.IsStale(record.Version, srv.CurrentVersion()),
	}, nil
}

// Save validates and stores fields with the current schema version
func (srv *addressService) Save(ctx context.Context, fields entity.AddressFields) error {
	failures, err := srv.Validate(fields)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		srv.count(submissionInvalid)

		return failures
	}

	raw, err := entity.Serialize(fields, srv.CurrentVersion())
	if err != nil {
		return errors.Wrap(err, "failed to serialize address")
	}

	if err := srv.store.Set(ctx, srv.key, raw); err != nil {
		srv.count(submissionFailed)

		return errors.Wrap(err, "failed to save address")
	}

	srv.count(submissionSaved)
	srv.log(ctx).InfoContext(ctx, "Address saved", slog.Int("version", int(srv.CurrentVersion())))

	return nil
}

// Delete removes the stored record
func (srv *addressService) Delete(ctx context.Context) error {
	if err := srv.store.Remove(ctx, srv.key); err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	srv.log(ctx).InfoContext(ctx, "Address deleted")

	return nil
}

func (srv *addressService) Validate(fields entity.AddressFields) (validation.ValidationErrors, error) {
	failures, err := srv.validator.ValidateForm(fields, srv.CurrentVersion())
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate address")
	}

	return failures, nil
}

func (srv *addressService) Rules() ([]validation.FieldRule, error) {
	return srv.validator.RulesFor(srv.CurrentVersion())
}

func (srv *addressService) CurrentVersion() entity.SchemaVersion {
	return entity.CurrentSchemaVersion
}

func (srv *addressService) count(outcome string) {
	if srv.metrics != nil {
		srv.metrics.IncSubmission(outcome)
	}
}
