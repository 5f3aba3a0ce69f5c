package utils

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ImageProcessingError represents errors that can occur during image processing.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// ImageConstraints defines dimension bounds for OCR preparation.
type ImageConstraints struct {
	MaxWidth  int
	MaxHeight int
	MinWidth  int
	MinHeight int
}

// DefaultImageConstraints returns the default constraints for product photos.
// Phone cameras produce far more pixels than text recognition needs.
func DefaultImageConstraints() ImageConstraints {
	return ImageConstraints{
		MaxWidth:  2048,
		MaxHeight: 2048,
		MinWidth:  32,
		MinHeight: 32,
	}
}

// PrepareForOCR validates dimensions and downscales oversized photos with
// Lanczos resampling. Images already within bounds pass through unchanged.
func PrepareForOCR(img image.Image, constraints ImageConstraints) (image.Image, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "prepare", Err: errors.New("input image is nil")}
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < constraints.MinWidth || h < constraints.MinHeight {
		return nil, &ImageProcessingError{
			Operation: "prepare",
			Err: fmt.Errorf("image dimensions %dx%d below minimum %dx%d",
				w, h, constraints.MinWidth, constraints.MinHeight),
		}
	}
	if w <= constraints.MaxWidth && h <= constraints.MaxHeight {
		return img, nil
	}
	return imaging.Fit(img, constraints.MaxWidth, constraints.MaxHeight, imaging.Lanczos), nil
}
