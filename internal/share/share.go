// Package share turns the stored settings into a QR code so they can be
// carried to another machine with a phone camera.
package share

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/beat2frame/internal/settings"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// Payload is the text held by the QR code: the encoded settings record.
func Payload(s settings.Settings) (string, error) {
	return settings.Encode(s)
}

// PNG returns a QR code image of s.
func PNG(s settings.Settings, size int) ([]byte, error) {
	raw, err := Payload(s)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(raw, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	return png, nil
}

// WritePNG writes a QR code image of s to path.
func WritePNG(s settings.Settings, path string, size int) error {
	raw, err := Payload(s)
	if err != nil {
		return err
	}
	return errors.Wrapf(qrcode.WriteFile(raw, qrcode.Medium, size, path), "writing %s", path)
}
