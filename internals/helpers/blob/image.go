package blob

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// NormalizeLogo decodes a jpeg/png/webp upload, shrinks it to maxW keeping the
// aspect ratio and re-encodes it as lossy WebP.
func NormalizeLogo(data []byte, maxW int, quality float32) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	if maxW > 0 && img.Bounds().Dx() > maxW {
		img = imaging.Resize(img, maxW, 0, imaging.CatmullRom)
	}
	if quality <= 0 {
		quality = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	switch ct := mimetype.Detect(data).String(); ct {
	case "image/webp":
		return webp.Decode(bytes.NewReader(data))
	case "image/jpeg", "image/png", "image/gif":
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}
}
