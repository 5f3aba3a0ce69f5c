// Package testutil generates synthetic product-label images for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelImageConfig holds configuration for generating label images.
type LabelImageConfig struct {
	Text       string
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
	// Rotation is in degrees; zero keeps the label upright.
	Rotation float64
}

// DefaultLabelImageConfig returns a white label with black text, sized like a
// close-up photo of a product sticker.
func DefaultLabelImageConfig(text string) LabelImageConfig {
	return LabelImageConfig{
		Text:       text,
		Width:      320,
		Height:     240,
		Background: color.White,
		Foreground: color.Black,
	}
}

// GenerateLabelImage renders the configured text line by line onto a solid
// background.
func GenerateLabelImage(cfg LabelImageConfig) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{cfg.Background}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 4
	y := 20

	for _, line := range strings.Split(cfg.Text, "\n") {
		d := &font.Drawer{
			Dst:  img,
			Src:  &image.Uniform{cfg.Foreground},
			Face: face,
			Dot:  fixed.P(10, y),
		}
		d.DrawString(line)
		y += lineHeight
	}

	if cfg.Rotation != 0 {
		return imaging.Rotate(img, cfg.Rotation, cfg.Background)
	}
	return img
}

// CreateTestImage creates a solid-color image for tests that only care about
// dimensions.
func CreateTestImage(width, height int, backgroundColor color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{backgroundColor}, image.Point{}, draw.Src)
	return img
}

// SaveImage writes an image to disk as PNG, failing the test on error.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.NoError(t, png.Encode(f, img))
}
