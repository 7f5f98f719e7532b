// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"addrcard/internal/delivery/api/router/handler"
	"addrcard/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AddressHandler *handler.AddressHandler
	QRCodeHandler  *handler.QRCodeHandler
	Metrics        *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	addressHandler *handler.AddressHandler
	qrcodeHandler  *handler.QRCodeHandler
	metrics        *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		addressHandler: params.AddressHandler,
		qrcodeHandler:  params.QRCodeHandler,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))

	// API v1 routes
	apiV1 := e.Group("/api/v1")

	// Address form routes
	addressGroup := apiV1.Group("/address")
	{
		addressGroup.GET("", r.addressHandler.GetAddress)
		addressGroup.PUT("", r.addressHandler.PutAddress)
		addressGroup.DELETE("", r.addressHandler.DeleteAddress)
		addressGroup.GET("/form", r.addressHandler.GetForm)
	}

	// QR code routes
	qrcodeGroup := apiV1.Group("/qrcode")
	{
		qrcodeGroup.GET("", r.qrcodeHandler.GetQRCode)
		qrcodeGroup.GET("/payload", r.qrcodeHandler.GetPayload)
	}
}
