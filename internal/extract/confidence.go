package extract

import "github.com/itemlens/itemlens/internal/textproc"

// Field weights for the overall confidence score. Together they cap at 95;
// the remaining 5 points come from average line quality.
const (
	confBrand       = 30
	confProductLine = 20
	confModelNumber = 15
	confCapacity    = 20
	confCategory    = 10

	confQualityBonusCap = 5.0
)

// OverallConfidence scores how much of the product record was recovered,
// weighted by field importance, in [0,1]. Adding any field never lowers the
// score.
func OverallConfidence(info Info, units []textproc.Unit) float64 {
	score := 0.0
	if info.Brand != "" {
		score += confBrand
	}
	if info.ProductLine != "" {
		score += confProductLine
	}
	if info.ModelNumber != "" {
		score += confModelNumber
	}
	if info.Capacity != "" {
		score += confCapacity
	}
	if info.Category != "" {
		score += confCategory
	}

	bonus := textproc.AverageQualityScore(units) * 0.05
	if bonus > confQualityBonusCap {
		bonus = confQualityBonusCap
	}
	score += bonus

	score /= 100
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
