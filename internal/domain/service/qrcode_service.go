package service

// QRCodeRenderer turns an opaque payload into a QR code image
type QRCodeRenderer interface {
	// Render encodes text verbatim as a PNG image of size x size pixels.
	// A size <= 0 uses the renderer's configured default.
	Render(text string, size int) ([]byte, error)

	// DefaultSize returns the configured image size in pixels
	DefaultSize() int
}
