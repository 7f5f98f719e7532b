package entity

// Screen names a navigation target.
type Screen string

const (
	ScreenQRCode  Screen = "qrcode"
	ScreenAddress Screen = "address"
)
