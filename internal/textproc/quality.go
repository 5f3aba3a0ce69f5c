package textproc

import (
	"strings"
	"unicode"
)

// Quality is the usefulness estimate for one line of OCR text. Score is a
// 0-100 heuristic; IsUseful marks lines worth extracting from; Confidence is
// the score normalized into [0,1].
type Quality struct {
	Score      float64
	IsUseful   bool
	Confidence float64
}

// usefulScoreThreshold separates lines worth extracting from noise.
const usefulScoreThreshold = 35

// productKeywords earn a flat bonus per distinct match; they mark lines that
// talk about the product rather than packaging filler.
var productKeywords = []string{
	"gb", "tb", "usb", "drive", "flash", "storage", "ssd", "card", "memory", "portable",
}

// AssessLine scores a cleaned line on length, composition, and keyword
// signals.
func AssessLine(line string) Quality {
	score := 50.0

	score += lengthBonus(len([]rune(line)))
	score += letterRatioBonus(line)
	score += wordCountBonus(line)

	if hasLongWord(line, 4) {
		score += 20
	}
	if specialCharRatio(line) > 0.4 {
		score -= 40
	}

	lower := strings.ToLower(line)
	for _, kw := range productKeywords {
		if strings.Contains(lower, kw) {
			score += 20
		}
	}

	score += ScoreEnglishLikelihood(line) * 35
	score -= float64(countAccentedRunes(line)) * 20

	return Quality{
		Score:      score,
		IsUseful:   score > usefulScoreThreshold,
		Confidence: clamp01(score / 100),
	}
}

func lengthBonus(n int) float64 {
	switch {
	case n >= 3 && n <= 5:
		return -20
	case n >= 6 && n <= 10:
		return 5
	case n >= 11 && n <= 40:
		return 25
	case n >= 41 && n <= 80:
		return 15
	default:
		return -25
	}
}

func letterRatioBonus(line string) float64 {
	letters, digits := 0, 0
	for _, r := range line {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	total := letters + digits
	if total == 0 {
		return 0
	}
	ratio := float64(letters) / float64(total)
	switch {
	case ratio >= 0.4 && ratio <= 0.8:
		return 25
	case ratio >= 0.2 && ratio <= 0.9:
		return 10
	default:
		return -15
	}
}

func wordCountBonus(line string) float64 {
	switch n := len(strings.Fields(line)); {
	case n <= 1:
		return -10
	case n <= 3:
		return 15
	case n <= 6:
		return 25
	default:
		return 10
	}
}

func hasLongWord(line string, minLen int) bool {
	for _, w := range strings.Fields(line) {
		if len([]rune(w)) >= minLen {
			return true
		}
	}
	return false
}

func specialCharRatio(line string) float64 {
	runes := []rune(line)
	if len(runes) == 0 {
		return 0
	}
	special := 0
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	return float64(special) / float64(len(runes))
}
