// Package labeler defines the image-labeling collaborator consumed by the
// analysis pipeline, plus adapters for concrete providers. Labeling is
// best-effort: the orchestrator tolerates a failing labeler and proceeds on
// OCR text alone.
package labeler

import "context"

// Label is one description of the photographed object with the provider's
// confidence in [0,1].
type Label struct {
	Text       string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Labeler produces image labels for a stored photo.
type Labeler interface {
	Labels(ctx context.Context, imagePath string) ([]Label, error)
}

// Disabled is a Labeler that always returns no labels. Used when no labeling
// backend is configured.
type Disabled struct{}

// Labels implements Labeler.
func (Disabled) Labels(context.Context, string) ([]Label, error) { return nil, nil }
