package detect

import (
	"strings"

	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/textproc"
)

// Classification weights. Label evidence is weighted higher than line
// evidence because labels come with their own confidence already applied.
const (
	categoryScoreThreshold = 0.6
	lineKeywordWeight      = 1.5
	labelKeywordWeight     = 2.5
)

// ClassifyProduct picks the best-matching product category, or "" when no
// category clears the score threshold. Every keyword hit in a semantic unit
// contributes proportionally to that line's quality; every hit in an image
// label contributes proportionally to the label's confidence. Score ties
// resolve to the category declared first in the reference tables, keeping
// classification deterministic.
func ClassifyProduct(units []textproc.Unit, labels []labeler.Label) string {
	best := ""
	bestScore := 0.0

	for _, cat := range tables.Categories {
		score := scoreCategory(cat.Keywords, units, labels)
		if score > categoryScoreThreshold && score > bestScore {
			best = cat.Name
			bestScore = score
		}
	}
	return best
}

func scoreCategory(keywords []string, units []textproc.Unit, labels []labeler.Label) float64 {
	score := 0.0
	for _, kw := range keywords {
		for _, u := range units {
			if strings.Contains(strings.ToLower(u.Text), kw) {
				score += u.Quality.Score / 100 * lineKeywordWeight
			}
		}
		for _, lab := range labels {
			if strings.Contains(strings.ToLower(lab.Text), kw) {
				score += lab.Confidence * labelKeywordWeight
			}
		}
	}
	return score
}
