package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarScalesToSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	out, err := Avatar(&in)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, AvatarSize, decoded.Bounds().Dx())
	assert.Equal(t, AvatarSize, decoded.Bounds().Dy())
}

func TestAvatarRejectsGarbage(t *testing.T) {
	_, err := Avatar(strings.NewReader("definitely not an image"))
	assert.Error(t, err)
}

func TestAvatarRejectsOversize(t *testing.T) {
	_, err := Avatar(bytes.NewReader(make([]byte, MaxUploadBytes+10)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSquareCrop(t *testing.T) {
	assert.Equal(t, image.Rect(100, 0, 300, 200), squareCrop(image.Rect(0, 0, 400, 200)))
	assert.Equal(t, image.Rect(0, 50, 100, 150), squareCrop(image.Rect(0, 0, 100, 200)))
}
