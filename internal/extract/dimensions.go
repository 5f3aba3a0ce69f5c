package extract

import "regexp"

var reDimensions = regexp.MustCompile(
	`\d+(\.\d+)?\s*[xX×]\s*\d+(\.\d+)?(\s*[xX×]\s*\d+(\.\d+)?)?(\s*(inches|inch|in|mm|cm|m))?`)

// Dimensions extracts the first NxN or NxNxN measurement from raw text,
// returned verbatim without unit normalization.
func Dimensions(rawText string) string {
	return reDimensions.FindString(rawText)
}
