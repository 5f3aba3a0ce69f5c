package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/itemlens/itemlens/internal/textproc"
)

const (
	modelSearchDepth = 10
	// Long descriptive prose is skipped; model codes live on short lines.
	modelSkipDescriptiveLen = 35

	modelMinLen = 4
	modelMaxLen = 25
)

var modelPatterns = []*regexp.Regexp{
	// Explicitly labeled value: "Model: SDCZ48-128G-A46", "SKU #12345A".
	regexp.MustCompile(`(?i)\b(?:model|sku|part|p/n|mpn)\b\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9/-]*)`),
	// Letter prefix then digits: "SDCZ48", "DTX64".
	regexp.MustCompile(`\b[A-Z]{2,}[0-9]{2,}[A-Z0-9-]*\b`),
	// Digit prefix then letters: "128GBX2A".
	regexp.MustCompile(`\b[0-9]{2,}[A-Z]{2,}[A-Z0-9-]*\b`),
}

// ModelNumber finds a manufacturer model or part code in the top-quality
// units. Patterns are tried in priority order across all units before the
// next pattern is considered; the first candidate that survives validation
// wins. Candidates that collide with the already-extracted capacity or
// product line are rejected so one piece of text never fills two fields.
func ModelNumber(units []textproc.Unit, capacity, productLine, brand string) string {
	patterns := modelPatterns
	if brand != "" {
		brandRe := regexp.MustCompile(
			`(?i)\b` + regexp.QuoteMeta(brand) + `[\s-]+([A-Za-z0-9][A-Za-z0-9-]{2,})`)
		patterns = append(append([]*regexp.Regexp{}, modelPatterns...), brandRe)
	}

	top := textproc.TopByQuality(units, modelSearchDepth)
	for _, re := range patterns {
		for _, u := range top {
			if u.Type == textproc.LineDescriptive && len(u.Text) > modelSkipDescriptiveLen {
				continue
			}
			m := re.FindStringSubmatch(u.Text)
			if m == nil {
				continue
			}
			candidate := m[0]
			if len(m) > 1 && m[1] != "" {
				candidate = m[1]
			}
			if validModelNumber(candidate, capacity, productLine) {
				return candidate
			}
		}
	}
	return ""
}

func validModelNumber(candidate, capacity, productLine string) bool {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < modelMinLen || len(candidate) > modelMaxLen {
		return false
	}
	if capacity != "" && strings.Contains(strings.ToUpper(candidate), strings.ToUpper(capacity)) {
		return false
	}
	if productLine != "" && strings.EqualFold(candidate, productLine) {
		return false
	}
	letters, digits := 0, 0
	for _, r := range candidate {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
	}
	return letters >= 2 && digits >= 1
}
