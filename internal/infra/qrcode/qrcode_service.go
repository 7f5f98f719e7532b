package qrcode

import (
	"fmt"

	"addrcard/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const (
	minSize = 64
	maxSize = 2048
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code renderer
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeRenderer {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 clampSize(size),
		errorCorrectionLevel: level,
	}
}

// Render encodes text verbatim; the payload is never re-encoded
func (s *qrcodeService) Render(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("failed to create QR code: empty payload")
	}

	if size <= 0 {
		size = s.size
	}

	qrCode, err := qrcode.New(text, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(clampSize(size))
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// DefaultSize returns the configured image size
func (s *qrcodeService) DefaultSize() int {
	return s.size
}

func clampSize(size int) int {
	switch {
	case size < minSize:
		return minSize
	case size > maxSize:
		return maxSize
	default:
		return size
	}
}
