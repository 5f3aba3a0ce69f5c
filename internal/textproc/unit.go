package textproc

import (
	"sort"
	"strings"
)

// Unit is one cleaned, scored, classified line of recognized text: the
// atomic input to the extraction stages. Position values are contiguous in
// emission order; grouping may merge two units but never reorders survivors.
type Unit struct {
	Text         string
	OriginalText string
	Position     int
	Quality      Quality
	Tokens       []Token
	Type         LineType
}

// BuildUnits cleans every line of the (already filtered) text and assembles
// semantic units from the survivors. Rejected lines do not occupy positions.
func BuildUnits(text string) []Unit {
	var units []Unit
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		cleaned := CleanLine(raw)
		if cleaned == "" {
			continue
		}
		units = append(units, Unit{
			Text:         cleaned,
			OriginalText: raw,
			Position:     len(units),
			Quality:      AssessLine(cleaned),
			Tokens:       Tokenize(cleaned),
			Type:         ClassifyLine(cleaned),
		})
	}
	return units
}

// TopByQuality returns the n highest-scoring units, best first. The sort is
// stable so equal scores keep emission order. The input slice is not
// modified.
func TopByQuality(units []Unit, n int) []Unit {
	sorted := make([]Unit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quality.Score > sorted[j].Quality.Score
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// AverageQualityScore returns the mean line quality score, or 0 for no units.
func AverageQualityScore(units []Unit) float64 {
	if len(units) == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range units {
		sum += u.Quality.Score
	}
	return sum / float64(len(units))
}
