package extract

import (
	"regexp"
	"strings"

	"github.com/itemlens/itemlens/internal/textproc"
)

// productLineSearchDepth limits series search to the best lines.
const productLineSearchDepth = 8

// ProductLine finds a manufacturer series name ("Ultra", "Cruzer Glide") in
// the top-quality units. Brand-specific vocabulary is tried before the
// generic list. Single-word entries must match on word boundaries so "Pro"
// does not fire inside "Protect"; multi-word entries match as substrings in
// a second pass.
func ProductLine(units []textproc.Unit, brand string) string {
	top := textproc.TopByQuality(units, productLineSearchDepth)
	vocab := tables.BrandProductLines(brand)

	for _, entry := range vocab {
		if strings.Contains(entry, " ") {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(entry) + `\b`)
		for _, u := range top {
			if re.MatchString(u.Text) {
				return entry
			}
		}
	}

	for _, entry := range vocab {
		if !strings.Contains(entry, " ") {
			continue
		}
		le := strings.ToLower(entry)
		for _, u := range top {
			if strings.Contains(strings.ToLower(u.Text), le) {
				return entry
			}
		}
	}
	return ""
}
