package handler

import (
	"log/slog"
	"net/http"

	"addrcard/internal/delivery/api/response"
	deliverycontext "addrcard/internal/delivery/context"
	"addrcard/internal/domain/entity"
	domainerrors "addrcard/internal/domain/errors"
	"addrcard/internal/domain/service"
	"addrcard/internal/errors"
	"addrcard/internal/infra/i18n"
	"addrcard/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// QRCodeHandlerParams holds dependencies for QRCodeHandler, injected by Fx.
type QRCodeHandlerParams struct {
	fx.In

	PayloadUC  usecase.PayloadUsecase
	Renderer   service.QRCodeRenderer
	Translator *i18n.Translator
	Logger     *slog.Logger
}

// QRCodeHandler serves the QR code of the stored address
type QRCodeHandler struct {
	payloadUC  usecase.PayloadUsecase
	renderer   service.QRCodeRenderer
	translator *i18n.Translator
	logger     *slog.Logger
}

// NewQRCodeHandler is the constructor for QRCodeHandler
func NewQRCodeHandler(params QRCodeHandlerParams) *QRCodeHandler {
	return &QRCodeHandler{
		payloadUC:  params.PayloadUC,
		renderer:   params.Renderer,
		translator: params.Translator,
		logger:     params.Logger,
	}
}

// QRCodeRequest holds the query parameters of GET /api/v1/qrcode
type QRCodeRequest struct {
	Size int `query:"size" validate:"omitempty,min=64,max=2048"`
}

// ReentryDetails tells the client why the QR code is unavailable
type ReentryDetails struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// PayloadResponse is the classification of the stored record. DefaultSize is
// the image size GET /api/v1/qrcode renders when no size is requested.
type PayloadResponse struct {
	Status         entity.PayloadStatus `json:"status"`
	Payload        string               `json:"payload,omitempty"`
	StoredVersion  *int                 `json:"stored_version,omitempty"`
	CurrentVersion int                  `json:"current_version"`
	DefaultSize    int                  `json:"default_size"`
}

// GetQRCode renders the stored payload as PNG, or tells the client to enter
// the address again
func (h *QRCodeHandler) GetQRCode(c echo.Context) error {
	var req QRCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR code size")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	image, resolution, err := h.payloadUC.Render(c.Request().Context(), req.Size)
	if errors.Is(err, usecase.ErrNotRenderable) {
		return h.reentry(c, resolution)
	}
	if err != nil {
		if resolution.Renderable() {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Error("QR code rendering failed", slog.Any("error", err))

			return response.HandleAppError(c, domainerrors.ErrQRCodeRenderFailed)
		}

		return errors.WithStack(err)
	}

	return response.PNG(c, image)
}

// GetPayload returns the classification of the stored record
func (h *QRCodeHandler) GetPayload(c echo.Context) error {
	resolution, err := h.payloadUC.Resolve(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	resp := PayloadResponse{
		Status:         resolution.Status,
		CurrentVersion: int(entity.CurrentSchemaVersion),
		DefaultSize:    h.renderer.DefaultSize(),
	}
	if resolution.Renderable() {
		resp.Payload = string(resolution.Payload)
	}
	if resolution.HasVersion {
		version := int(resolution.StoredVersion)
		resp.StoredVersion = &version
	}

	return response.Success(c, http.StatusOK, resp)
}

func (h *QRCodeHandler) reentry(c echo.Context, resolution entity.Resolution) error {
	labels := h.translator.Localizer(c.Request().Header.Get("Accept-Language"))
	details := ReentryDetails{
		Status: string(resolution.Status),
		Action: labels.T(i18n.KeyEnterAddress),
	}

	if resolution.Status == entity.PayloadOutdated {
		return response.Conflict(c, domainerrors.ErrAddressOutdated.ErrorCode(), labels.T(i18n.KeyOutdated), details)
	}

	return response.NotFound(c, domainerrors.ErrAddressNotFound.ErrorCode(), labels.T(i18n.KeyNoAddress), details)
}
