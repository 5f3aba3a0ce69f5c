package detect

import (
	"strings"

	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/textproc"
)

const (
	// brandSearchDepth limits brand text search to the highest-quality lines.
	brandSearchDepth = 7
	// brandLabelConfidenceFloor gates label-based brand evidence.
	brandLabelConfidenceFloor = 0.6
)

// FindBrand resolves the brand with a strict priority waterfall, stopping at
// the first hit:
//
//  1. detected logos (strongest evidence, independent of text quality)
//  2. category-specific brands in the top-quality lines
//  3. any known brand in the top-quality lines
//  4. any known brand in a confident image label
//
// An empty return means all four stages missed.
func FindBrand(units []textproc.Unit, labels []labeler.Label, category string, detectedLogos []string) string {
	if len(detectedLogos) > 0 {
		return detectedLogos[0]
	}

	top := textproc.TopByQuality(units, brandSearchDepth)

	if category != "" {
		if b := matchBrandInUnits(tables.CategoryBrands(category), top); b != "" {
			return b
		}
	}

	all := tables.AllBrands()
	if b := matchBrandInUnits(all, top); b != "" {
		return b
	}

	for _, brand := range all {
		lb := strings.ToLower(brand)
		for _, lab := range labels {
			if lab.Confidence > brandLabelConfidenceFloor &&
				strings.Contains(strings.ToLower(lab.Text), lb) {
				return brand
			}
		}
	}
	return ""
}

func matchBrandInUnits(brands []string, units []textproc.Unit) string {
	for _, brand := range brands {
		lb := strings.ToLower(brand)
		for _, u := range units {
			if strings.Contains(strings.ToLower(u.Text), lb) {
				return brand
			}
		}
	}
	return ""
}
