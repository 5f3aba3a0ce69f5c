// Package detect identifies brand and category evidence in OCR text and
// image labels: logo spotting, product-type classification, and the brand
// resolution waterfall.
package detect

import (
	"strings"

	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/refdata"
)

var tables = refdata.MustLoad()

// DetectLogos cross-references raw OCR text and image labels against the
// logo pattern table. It returns matched canonical brand names in table
// order, de-duplicated. Logo evidence is independent of line quality, so a
// brand stamped on the casing counts even when the surrounding text is
// garbage.
func DetectLogos(rawText string, labels []labeler.Label) []string {
	lowerText := strings.ToLower(rawText)

	var found []string
	for _, lp := range tables.LogoPatterns {
		if matchesAnyPattern(lp.Patterns, lowerText, labels) {
			found = append(found, lp.Brand)
		}
	}
	return found
}

func matchesAnyPattern(patterns []string, lowerText string, labels []labeler.Label) bool {
	for _, p := range patterns {
		lp := strings.ToLower(p)
		if strings.Contains(lowerText, lp) {
			return true
		}
		for _, lab := range labels {
			if strings.Contains(strings.ToLower(lab.Text), lp) {
				return true
			}
		}
	}
	return false
}
