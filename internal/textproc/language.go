// Package textproc turns raw OCR text into cleaned, scored, classified
// semantic units. It owns the language heuristics, line quality assessment,
// tokenization, and the grouping pass that merges adjacent related lines.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/itemlens/itemlens/internal/refdata"
)

var tables = refdata.MustLoad()

// Scoring weights for English likelihood. The values are tuned against
// packaging photos of storage products; see the tests for anchor cases.
const (
	englishBaseScore     = 0.5
	techKeywordBonus     = 0.20
	foreignWordPenalty   = 0.30
	accentDensityFactor  = 3.0
	englishFunctionBonus = 0.25
	foreignFunctionWords = 0.35
	knownBrandBonus      = 0.25
)

var (
	reEnglishFunction = regexp.MustCompile(`\b(the|and|with|for|from|this|that)\b`)
	reForeignFunction = regexp.MustCompile(`\b(de|el|la|le|du|des|une|los|las)\b`)
)

// ScoreEnglishLikelihood estimates how likely a line of OCR text is English
// product text, in [0,1]. The score is deterministic: identical input always
// produces the identical score.
func ScoreEnglishLikelihood(line string) float64 {
	if strings.TrimSpace(line) == "" {
		return 0
	}

	score := englishBaseScore
	lower := strings.ToLower(line)
	words := strings.Fields(lower)

	for _, kw := range tables.EnglishTechKeywords {
		for _, w := range words {
			if strings.Contains(w, kw) {
				score += techKeywordBonus
				break
			}
		}
	}

	for _, fw := range tables.ForeignIndicatorWords {
		if strings.Contains(lower, fw) {
			score -= foreignWordPenalty
		}
	}

	if n := len([]rune(line)); n > 0 {
		score -= accentDensityFactor * float64(countAccentedRunes(line)) / float64(n)
	}

	if reEnglishFunction.MatchString(lower) {
		score += englishFunctionBonus
	}
	if reForeignFunction.MatchString(lower) {
		score -= foreignFunctionWords
	}

	for _, brand := range tables.AllBrands() {
		if strings.Contains(lower, strings.ToLower(brand)) {
			score += knownBrandBonus
			break
		}
	}

	return clamp01(score)
}

// countAccentedRunes counts letters carrying combining diacritical marks.
// The line is NFD-decomposed so precomposed characters (é, ñ, ü) are counted
// the same as decomposed sequences.
func countAccentedRunes(s string) int {
	count := 0
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			count++
		}
	}
	return count
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
