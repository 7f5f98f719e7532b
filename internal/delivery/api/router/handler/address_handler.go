package handler

import (
	"log/slog"
	"net/http"

	"addrcard/internal/delivery/api/response"
	deliverycontext "addrcard/internal/delivery/context"
	"addrcard/internal/domain/entity"
	domainerrors "addrcard/internal/domain/errors"
	"addrcard/internal/domain/repository"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/errors"
	"addrcard/internal/infra/i18n"
	"addrcard/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC   usecase.AddressUsecase
	Controllers usecase.AddressControllerFactory
	Translator  *i18n.Translator
	Logger      *slog.Logger
}

// AddressHandler serves the address form
type AddressHandler struct {
	addressUC   usecase.AddressUsecase
	controllers usecase.AddressControllerFactory
	translator  *i18n.Translator
	logger      *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC:   params.AddressUC,
		controllers: params.Controllers,
		translator:  params.Translator,
		logger:      params.Logger,
	}
}

// AddressRequest is the request body of PUT /api/v1/address. The domain
// validator judges the content; the tags only bound the input size.
type AddressRequest struct {
	FirstName   string `json:"firstName" validate:"max=200"`
	LastName    string `json:"lastName" validate:"max=200"`
	Street      string `json:"street" validate:"max=200"`
	PostalCode  string `json:"postalCode" validate:"max=20"`
	City        string `json:"city" validate:"max=200"`
	PhoneNumber string `json:"phoneNumber" validate:"max=50"`
	Email       string `json:"email" validate:"max=254"`
	DateOfBirth string `json:"dateOfBirth" validate:"max=10"`
}

func (r *AddressRequest) fields() entity.AddressFields {
	return entity.AddressFields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Street:      r.Street,
		PostalCode:  r.PostalCode,
		City:        r.City,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		DateOfBirth: r.DateOfBirth,
	}
}

// AddressResponse describes the stored address
type AddressResponse struct {
	State          string               `json:"state"`
	Fields         entity.AddressFields `json:"fields"`
	StoredVersion  *int                 `json:"stored_version,omitempty"`
	Outdated       bool                 `json:"outdated"`
	CurrentVersion int                  `json:"current_version"`
}

// FieldErrorDetail is one failing field in a VALIDATION_FAILED response
type FieldErrorDetail struct {
	Field   entity.FieldName  `json:"field"`
	Reason  validation.Reason `json:"reason"`
	Label   string            `json:"label"`
	Message string            `json:"message"`
}

// FormField describes one input of the address form
type FormField struct {
	Name        entity.FieldName `json:"name"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder"`
	Rule        validation.Rule  `json:"rule"`
}

// FormResponse is the localized description of the current address form
type FormResponse struct {
	Locale  string            `json:"locale"`
	Locales []string          `json:"locales"`
	Version int               `json:"version"`
	Fields  []FormField       `json:"fields"`
	Actions map[string]string `json:"actions"`
}

func (h *AddressHandler) labels(c echo.Context) service.Labels {
	return h.translator.Localizer(c.Request().Header.Get("Accept-Language"))
}

func (h *AddressHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// GetAddress returns the stored address as the form would load it
func (h *AddressHandler) GetAddress(c echo.Context) error {
	loaded, err := h.addressUC.Load(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	resp := AddressResponse{
		State:          string(loaded.Status),
		Fields:         loaded.Fields,
		Outdated:       loaded.Outdated,
		CurrentVersion: int(h.addressUC.CurrentVersion()),
	}
	if loaded.HasVersion {
		version := int(loaded.StoredVersion)
		resp.StoredVersion = &version
	}

	return response.Success(c, http.StatusOK, resp)
}

// PutAddress submits the address form
func (h *AddressHandler) PutAddress(c echo.Context) error {
	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()
	labels := h.labels(c)

	controller := h.controllers.NewController()
	activation, err := controller.Activate(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	defer activation.Close()

	if err := activation.Wait(ctx); err != nil {
		h.log(c).WarnContext(ctx, "Loading the stored address failed, submitting anyway", slog.Any("error", err))
	}

	fields := req.fields()
	for _, field := range entity.AllFields() {
		value, _ := fields.Get(field)
		if err := controller.Edit(field, value); err != nil {
			return errors.WithStack(err)
		}
	}

	err = controller.Submit(ctx)

	var failures validation.ValidationErrors
	switch {
	case err == nil:
		snapshot := controller.Snapshot()
		version := int(snapshot.StoredVersion)

		return response.Success(c, http.StatusOK, AddressResponse{
			State:          string(snapshot.State),
			Fields:         snapshot.Fields,
			StoredVersion:  &version,
			CurrentVersion: int(h.addressUC.CurrentVersion()),
		})
	case errors.As(err, &failures):
		return response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			fieldErrorDetails(failures, labels),
		)
	case errors.Is(err, repository.ErrStoreIO):
		h.log(c).ErrorContext(ctx, "Saving the address failed", slog.Any("error", err))

		return response.Error(c, domainerrors.ErrStoreUnavailable.HTTPCode(),
			domainerrors.ErrStoreUnavailable.ErrorCode(), labels.T(i18n.KeySaveFailed), nil)
	default:
		return errors.WithStack(err)
	}
}

// DeleteAddress removes the stored address
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()

	controller := h.controllers.NewController()
	if err := controller.Delete(ctx); err != nil {
		if errors.Is(err, repository.ErrStoreIO) {
			h.log(c).ErrorContext(ctx, "Deleting the address failed", slog.Any("error", err))

			return response.Error(c, domainerrors.ErrStoreUnavailable.HTTPCode(),
				domainerrors.ErrStoreUnavailable.ErrorCode(), h.labels(c).T(i18n.KeyDeleteFailed), nil)
		}

		return errors.WithStack(err)
	}

	if recorder := deliverycontext.GetNavigation(ctx); recorder != nil {
		recorder.Record(entity.ScreenAddress)
	}

	return response.Success(c, http.StatusOK, map[string]string{"state": string(controller.Snapshot().State)})
}

// GetForm describes the current form in the requested language
func (h *AddressHandler) GetForm(c echo.Context) error {
	rules, err := h.addressUC.Rules()
	if err != nil {
		return errors.WithStack(err)
	}

	labels := h.labels(c)
	fields := make([]FormField, 0, len(rules))
	for _, fieldRule := range rules {
		fields = append(fields, FormField{
			Name:        fieldRule.Field,
			Label:       labels.T(i18n.LabelKey(fieldRule.Field)),
			Placeholder: labels.T(i18n.PlaceholderKey(fieldRule.Field)),
			Rule:        fieldRule.Rule,
		})
	}

	return response.Success(c, http.StatusOK, FormResponse{
		Locale:  labels.Locale(),
		Locales: h.translator.Locales(),
		Version: int(h.addressUC.CurrentVersion()),
		Fields:  fields,
		Actions: map[string]string{
			"save":   labels.T(i18n.KeySave),
			"delete": labels.T(i18n.KeyDeleteData),
		},
	})
}

func fieldErrorDetails(failures validation.ValidationErrors, labels service.Labels) []FieldErrorDetail {
	details := make([]FieldErrorDetail, 0, len(failures))
	for _, failure := range failures {
		details = append(details, FieldErrorDetail{
			Field:   failure.Field,
			Reason:  failure.Reason,
			Label:   labels.T(i18n.LabelKey(failure.Field)),
			Message: labels.T(i18n.ReasonKey(failure.Reason)),
		})
	}

	return details
}
