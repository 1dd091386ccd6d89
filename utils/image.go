package utils

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// MaxImageDimension bounds the longest side of uploaded catalog images.
	MaxImageDimension = 1200
	imageQuality      = 80
)

// OptimizeImage decodes an uploaded image (jpeg, png, gif, bmp, tiff),
// shrinks it to fit maxDim x maxDim keeping the aspect ratio, and
// re-encodes it as JPEG. Images already small enough are only re-encoded.
func OptimizeImage(data []byte, maxDim int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
