// Package ocr provides the text-recognition collaborator for the analysis
// pipeline. The pipeline treats recognition as an external service: it hands
// over an image path and gets back recognized lines with an aggregate
// confidence, tolerating total failure.
package ocr

import "context"

// Result is the recognized text for one image.
type Result struct {
	// Text is the full recognized text, lines joined by newlines.
	Text string
	// Lines are the recognized lines in reading order.
	Lines []string
	// Confidence is the mean word confidence in [0,1].
	Confidence float64
}

// Engine recognizes text in an image file.
type Engine interface {
	Recognize(ctx context.Context, imagePath string) (Result, error)
}
