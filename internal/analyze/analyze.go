// Package analyze orchestrates the product-identification pipeline: OCR and
// image labeling through external collaborators, text filtering and unit
// building, then field extraction into a structured result.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/itemlens/itemlens/internal/detect"
	"github.com/itemlens/itemlens/internal/extract"
	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/ocr"
	"github.com/itemlens/itemlens/internal/textproc"
	"github.com/itemlens/itemlens/internal/utils"
)

// ErrAnalysis marks the fatal error tier. Collaborator failures degrade to a
// minimal result instead; anything wrapped in ErrAnalysis means the pipeline
// could not produce a result at all.
var ErrAnalysis = errors.New("analysis failed")

// insufficientTextDescription is the fixed description for photos without
// enough readable text.
const insufficientTextDescription = "Not enough readable text"

// Config holds the orchestrator thresholds.
type Config struct {
	// MinTextLength is the minimum raw OCR text length to attempt extraction.
	MinTextLength int
	// LabelConfidenceFloor filters incoming image labels before any stage
	// sees them.
	LabelConfidenceFloor float64
}

// DefaultConfig returns the standard orchestrator thresholds.
func DefaultConfig() Config {
	return Config{
		MinTextLength:        10,
		LabelConfidenceFloor: 0.65,
	}
}

// Service runs the analysis pipeline. Safe for concurrent use; all state is
// per-call except the read-only reference tables.
type Service struct {
	cfg     Config
	engine  ocr.Engine
	labeler labeler.Labeler
	logger  *slog.Logger
}

// NewService creates a Service. A nil labeler disables image labeling; a nil
// logger discards nothing and falls back to slog.Default.
func NewService(cfg Config, engine ocr.Engine, lab labeler.Labeler, logger *slog.Logger) *Service {
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultConfig().MinTextLength
	}
	if cfg.LabelConfidenceFloor <= 0 {
		cfg.LabelConfidenceFloor = DefaultConfig().LabelConfidenceFloor
	}
	if lab == nil {
		lab = labeler.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, engine: engine, labeler: lab, logger: logger}
}

// AnalyzeImage persists an in-memory image to temp storage, analyzes it, and
// removes the temp file. Temp-file failures are fatal; the pipeline itself
// follows AnalyzeFile semantics.
func (s *Service) AnalyzeImage(ctx context.Context, img image.Image) (Result, error) {
	path, cleanup, err := utils.SaveTempImage(img)
	if err != nil {
		return Result{}, fmt.Errorf("%w: save temp image: %w", ErrAnalysis, err)
	}
	defer cleanup()
	return s.AnalyzeFile(ctx, path)
}

// AnalyzeFile runs the full pipeline on an image file. OCR or labeling
// failures degrade to empty inputs; insufficient readable text yields the
// minimal "Unknown Item" result. The output is deterministic for fixed
// collaborator responses.
func (s *Service) AnalyzeFile(ctx context.Context, imagePath string) (Result, error) {
	ocrRes, err := s.engine.Recognize(ctx, imagePath)
	if err != nil {
		s.logger.Warn("ocr unavailable, continuing without text", "path", imagePath, "error", err)
		ocrRes = ocr.Result{}
	}

	labels, err := s.labeler.Labels(ctx, imagePath)
	if err != nil {
		s.logger.Warn("labeling unavailable, continuing without labels", "path", imagePath, "error", err)
		labels = nil
	}
	labels = filterLabels(labels, s.cfg.LabelConfidenceFloor)

	rawText := ocrRes.Text
	logos := detect.DetectLogos(rawText, labels)
	filtered := textproc.FilterEnglishText(rawText)
	units := textproc.GroupRelated(textproc.BuildUnits(filtered))

	if len(strings.TrimSpace(rawText)) < s.cfg.MinTextLength || len(units) == 0 {
		s.logger.Info("insufficient readable text", "path", imagePath, "text_len", len(rawText))
		return Result{
			ItemName:    extract.UnknownItemName,
			Description: insufficientTextDescription,
			Confidence:  extract.OverallConfidence(extract.Info{}, nil),
		}, nil
	}

	var info extract.Info
	info.Category = detect.ClassifyProduct(units, labels)
	info.Brand = detect.FindBrand(units, labels, info.Category, logos)
	info.Capacity = extract.Capacity(units)
	info.ProductLine = extract.ProductLine(units, info.Brand)
	info.ModelNumber = extract.ModelNumber(units, info.Capacity, info.ProductLine, info.Brand)
	info.Name = extract.BuildName(info, units)
	info.Description = extract.Description(units)
	info.Condition = extract.Condition(rawText)
	info.Price, _ = extract.Price(rawText)
	info.Dimensions = extract.Dimensions(rawText)

	confidence := extract.OverallConfidence(info, units)
	s.logger.Debug("analysis complete",
		"path", imagePath,
		"name", info.Name,
		"brand", info.Brand,
		"category", info.Category,
		"confidence", confidence,
	)

	return Result{
		ItemName:       info.Name,
		Brand:          info.Brand,
		ProductLine:    info.ProductLine,
		ModelNumber:    info.ModelNumber,
		Capacity:       info.Capacity,
		Category:       info.Category,
		Description:    info.Description,
		Condition:      info.Condition,
		EstimatedPrice: info.Price,
		Dimensions:     info.Dimensions,
		RawText:        rawText,
		Confidence:     confidence,
	}, nil
}

func filterLabels(labels []labeler.Label, floor float64) []labeler.Label {
	var kept []labeler.Label
	for _, l := range labels {
		if l.Confidence >= floor {
			kept = append(kept, l)
		}
	}
	return kept
}
