package testutil

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLabelImage(t *testing.T) {
	cfg := DefaultLabelImageConfig("SanDisk Ultra 128GB\nModel: SDCZ48-128G-A46")
	img := GenerateLabelImage(cfg)

	bounds := img.Bounds()
	assert.Equal(t, 320, bounds.Dx())
	assert.Equal(t, 240, bounds.Dy())

	// Text rendering must leave some non-background pixels.
	dark := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				dark++
			}
		}
	}
	assert.Positive(t, dark)
}

func TestGenerateLabelImage_Rotated(t *testing.T) {
	cfg := DefaultLabelImageConfig("128GB")
	cfg.Rotation = 90

	img := GenerateLabelImage(cfg)
	bounds := img.Bounds()
	assert.Equal(t, 240, bounds.Dx())
	assert.Equal(t, 320, bounds.Dy())
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label.png")
	SaveImage(t, CreateTestImage(16, 16, color.White), path)
	require.FileExists(t, path)
}
