package extract

import "strings"

// Condition maps raw text to a condition grade via keyword buckets. Buckets
// are checked in table order, so "like new" resolves before the plain used
// grades. "" means no condition keyword was found.
func Condition(rawText string) string {
	lower := strings.ToLower(rawText)
	for _, bucket := range tables.Conditions {
		for _, kw := range bucket.Keywords {
			if strings.Contains(lower, kw) {
				return bucket.Name
			}
		}
	}
	return ""
}
