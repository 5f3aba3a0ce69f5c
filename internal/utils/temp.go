package utils

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// SaveTempImage writes an in-memory image to a temporary PNG so file-based
// collaborators (tesseract, the labeler) can read it. The returned cleanup
// removes the file and is safe to call exactly once.
func SaveTempImage(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "itemlens-*.png")
	if err != nil {
		return "", nil, &ImageProcessingError{Operation: "tempfile", Err: err}
	}
	path := f.Name()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, &ImageProcessingError{Operation: "encode", Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, &ImageProcessingError{Operation: "tempfile", Err: fmt.Errorf("close: %w", err)}
	}

	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}
