package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"golang.org/x/image/draw"
)

const (
	AvatarSize     = 128
	MaxUploadBytes = 5 << 20
	avatarQuality  = 85
)

var ErrTooLarge = errors.New("image exceeds upload limit")

// Avatar decodes an uploaded image, center-crops it to a square and scales
// it to AvatarSize. The result is always JPEG.
func Avatar(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}

	src := squareCrop(img.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func squareCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == h {
		return b
	}
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}
