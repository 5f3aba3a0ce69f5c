package extract

import (
	"regexp"
	"strings"

	"github.com/itemlens/itemlens/internal/textproc"
)

var reCapacity = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(TB|GB|MB|PB)`)

// Capacity finds a storage capacity such as "128GB" or "2 TB". When several
// units carry a capacity, the one on the highest-quality unit wins. The
// result is uppercased and trimmed; "" means no capacity was found.
func Capacity(units []textproc.Unit) string {
	best := ""
	bestScore := -1.0
	for _, u := range units {
		m := reCapacity.FindString(u.Text)
		if m == "" {
			continue
		}
		if u.Quality.Score > bestScore {
			best = m
			bestScore = u.Quality.Score
		}
	}
	return strings.ToUpper(strings.TrimSpace(best))
}
