package extract

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	priceFloor   = 0.01
	priceCeiling = 999999.99
)

var rePrice = regexp.MustCompile(`\$\s*[0-9][0-9,]*(\.[0-9]{2})?`)

// Price extracts the first dollar amount from raw text. Only the first match
// is considered; it is accepted when it falls inside sane retail bounds.
func Price(rawText string) (float64, bool) {
	m := rePrice.FindString(rawText)
	if m == "" {
		return 0, false
	}
	cleaned := strings.NewReplacer("$", "", " ", "", ",", "").Replace(m)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if v < priceFloor || v > priceCeiling {
		return 0, false
	}
	return v, true
}
