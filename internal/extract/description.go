package extract

import (
	"strings"

	"github.com/itemlens/itemlens/internal/textproc"
)

const (
	descriptionMaxUnits = 3
	descriptionMaxLen   = 150
)

// Description joins the most useful lines into a short free-text summary for
// the item form. "" means no line was useful enough.
func Description(units []textproc.Unit) string {
	var parts []string
	for _, u := range textproc.TopByQuality(units, descriptionMaxUnits) {
		if u.Quality.IsUseful {
			parts = append(parts, u.Text)
		}
	}
	desc := strings.Join(parts, "; ")
	if len(desc) > descriptionMaxLen {
		desc = strings.TrimSpace(desc[:descriptionMaxLen])
	}
	return desc
}
