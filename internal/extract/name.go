package extract

import (
	"regexp"
	"strings"

	"github.com/itemlens/itemlens/internal/textproc"
)

const (
	fallbackNameMinScore = 60
	fallbackNameMaxLen   = 60

	// UnknownItemName is the display name when nothing could be extracted.
	UnknownItemName = "Unknown Item"
)

var reSpaces = regexp.MustCompile(`\s+`)

// BuildName assembles the display name from the extracted fields in fixed
// priority: brand, product line, capacity, then category only when fewer
// than two parts were collected. Duplicate parts are skipped. With no parts
// at all it falls back to the best raw line, scrubbed of noise words, and
// finally to "Unknown Item".
func BuildName(info Info, units []textproc.Unit) string {
	var parts []string
	add := func(s string) {
		for _, p := range parts {
			if strings.EqualFold(p, s) {
				return
			}
		}
		parts = append(parts, s)
	}

	if info.Brand != "" {
		add(info.Brand)
	}
	if info.ProductLine != "" {
		add(info.ProductLine)
	}
	if info.Capacity != "" {
		add(info.Capacity)
	}
	if len(parts) < 2 && info.Category != "" {
		add(info.Category)
	}

	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if name := fallbackName(units); name != "" {
		return name
	}
	return UnknownItemName
}

// fallbackName returns the highest-quality line scoring above the floor,
// with noise words removed and the result truncated.
func fallbackName(units []textproc.Unit) string {
	top := textproc.TopByQuality(units, 1)
	if len(top) == 0 || top[0].Quality.Score <= fallbackNameMinScore {
		return ""
	}
	name := scrubNoiseWords(top[0].Text)
	if len(name) > fallbackNameMaxLen {
		name = strings.TrimSpace(name[:fallbackNameMaxLen])
	}
	return name
}

func scrubNoiseWords(text string) string {
	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !isNoiseWord(w) {
			kept = append(kept, w)
		}
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(strings.Join(kept, " "), " "))
}

func isNoiseWord(word string) bool {
	lower := strings.ToLower(strings.Trim(word, ".,!?:;"))
	for _, nw := range tables.NoiseWords {
		if lower == nw {
			return true
		}
	}
	return false
}
