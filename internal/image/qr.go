package imagepkg

import (
	"bytes"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// MaxQRSize caps the side of generated QR codes in pixels.
const MaxQRSize = 1024

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if size <= 0 || size > MaxQRSize {
		size = 400
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}

// GenerateQRImage returns an image.Image for further composition.
func GenerateQRImage(text string, size int) (image.Image, error) {
	b, err := GenerateQRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}
