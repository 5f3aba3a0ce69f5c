package textproc

import (
	"regexp"
	"sort"
	"strings"
)

// englishScoreThreshold is the minimum language score a line needs to survive
// filtering.
const englishScoreThreshold = 0.3

// maxAccentedRunes is the accent budget for a single line; beyond it the line
// is treated as foreign-language noise.
const maxAccentedRunes = 2

var (
	reWhitespace  = regexp.MustCompile(`\s+`)
	reRegulatory  = regexp.MustCompile(`^(MSIP|FCC|KCC|CE|UL|CCC|VCCI|PSE|ROHS)[-:/ A-Z0-9]*$`)
	reDigitRun    = regexp.MustCompile(`\d{13,}`)
	reUppercase   = regexp.MustCompile(`[A-Z]{10,}`)
	reHexRun      = regexp.MustCompile(`[0-9A-Fa-f]{16,}`)
	reURL         = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	reEmail       = regexp.MustCompile(`\S+@\S+\.\S+`)
	noisePatterns = []*regexp.Regexp{reRegulatory, reDigitRun, reUppercase, reHexRun, reURL, reEmail}
)

// FilterEnglishText keeps only the lines that score as likely English and
// re-ranks them best-first, so downstream take-top-N extractors see the
// strongest evidence early. If nothing passes the threshold the original
// text is returned unchanged: the filter never turns non-empty input into
// empty output.
func FilterEnglishText(rawText string) string {
	type scoredLine struct {
		text  string
		score float64
	}

	var kept []scoredLine
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if score := ScoreEnglishLikelihood(line); score >= englishScoreThreshold {
			kept = append(kept, scoredLine{text: line, score: score})
		}
	}
	if len(kept) == 0 {
		return rawText
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	lines := make([]string, len(kept))
	for i, sl := range kept {
		lines[i] = sl.text
	}
	return strings.Join(lines, "\n")
}

// CleanLine normalizes a line and rejects recognizable noise: regulatory
// boilerplate, serial-number-like runs, URLs, e-mail addresses, and
// foreign-language lines. An empty return value means the line was rejected.
// A line flagged by a foreign indicator word is rescued when it also carries
// English technical vocabulary.
func CleanLine(line string) string {
	if countAccentedRunes(line) > maxAccentedRunes {
		return ""
	}

	line = strings.TrimSpace(reWhitespace.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}

	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return ""
		}
	}

	lower := strings.ToLower(line)
	if containsForeignIndicator(lower) && !containsTechKeyword(lower) {
		return ""
	}

	return line
}

func containsForeignIndicator(lower string) bool {
	for _, fw := range tables.ForeignIndicatorWords {
		if strings.Contains(lower, fw) {
			return true
		}
	}
	return false
}

func containsTechKeyword(lower string) bool {
	for _, kw := range tables.EnglishTechKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
