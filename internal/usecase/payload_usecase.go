package usecase

import (
	"context"

	"addrcard/internal/domain/entity"
	"addrcard/internal/errors"
)

// ErrNotRenderable is returned by Render when the stored record is not current
var ErrNotRenderable = errors.New("stored address cannot be rendered")

// PayloadUsecase defines the QR code screen operations
type PayloadUsecase interface {
	// Resolve classifies the stored record and navigates back to the address
	// screen unless it is current
	Resolve(ctx context.Context) (entity.Resolution, error)

	// Render resolves the stored record and renders its payload as a PNG QR
	// code. A record that is not current yields ErrNotRenderable together
	// with its resolution.
	Render(ctx context.Context, size int) ([]byte, entity.Resolution, error)
}
