package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// TokenType classifies a single whitespace-delimited token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenCapacity
	TokenNumber
	TokenProperNoun
	TokenAcronym
	TokenModelCode
	TokenProductType
)

// String returns the token type name for logs and test output.
func (t TokenType) String() string {
	switch t {
	case TokenCapacity:
		return "capacity"
	case TokenNumber:
		return "number"
	case TokenProperNoun:
		return "proper_noun"
	case TokenAcronym:
		return "acronym"
	case TokenModelCode:
		return "model_code"
	case TokenProductType:
		return "product_type"
	default:
		return "word"
	}
}

// Token is one classified token with its position inside the line.
type Token struct {
	Text     string
	Position int
	Type     TokenType
}

// LineType classifies the whole line by its dominant content.
type LineType int

const (
	LineDescriptive LineType = iota
	LineBrandOrSeries
	LineCapacityInfo
	LineModelInfo
	LinePriceInfo
	LineDimensions
)

// String returns the line type name for logs and test output.
func (t LineType) String() string {
	switch t {
	case LineBrandOrSeries:
		return "brand_or_series"
	case LineCapacityInfo:
		return "capacity_info"
	case LineModelInfo:
		return "model_info"
	case LinePriceInfo:
		return "price_info"
	case LineDimensions:
		return "dimensions"
	default:
		return "descriptive"
	}
}

var (
	reTokenCapacity = regexp.MustCompile(`^\d+(\.\d+)?\s*(TB|GB|MB|PB)$`)
	reTokenNumber   = regexp.MustCompile(`^\d+$`)
	reTokenProper   = regexp.MustCompile(`^[A-Z][a-z]+$`)
	reTokenAcronym  = regexp.MustCompile(`^[A-Z]{2,}$`)
	reTokenCodeSet  = regexp.MustCompile(`^[A-Z0-9-]{2,}$`)

	reLineCapacity = regexp.MustCompile(`(?i)\d+\s*(GB|TB|MB)`)
	reLineModel    = regexp.MustCompile(`(?i)\b(model|sku|part|p/n|mpn)\b`)
	reLineMoney    = regexp.MustCompile(`\d+\.\d{2}`)
	reLineDims     = regexp.MustCompile(`\d+\s*[xX×]\s*\d+`)
)

// productTypeWords are matched against the lowercased token. Uppercase
// spellings such as "USB" or "SSD" are claimed by the acronym rule first;
// only the lowercase spellings reach this set.
var productTypeWords = map[string]struct{}{
	"usb": {}, "ssd": {}, "hdd": {}, "drive": {}, "flash": {}, "storage": {}, "card": {},
}

// Tokenize splits a line on whitespace and classifies each token. Rule order
// matters: the first matching rule wins.
func Tokenize(line string) []Token {
	fields := strings.Fields(line)
	tokens := make([]Token, len(fields))
	for i, f := range fields {
		tokens[i] = Token{Text: f, Position: i, Type: classifyToken(f)}
	}
	return tokens
}

func classifyToken(text string) TokenType {
	switch {
	case reTokenCapacity.MatchString(text):
		return TokenCapacity
	case reTokenNumber.MatchString(text):
		return TokenNumber
	case reTokenProper.MatchString(text):
		return TokenProperNoun
	case reTokenAcronym.MatchString(text):
		return TokenAcronym
	case isModelCode(text):
		return TokenModelCode
	default:
		if _, ok := productTypeWords[strings.ToLower(text)]; ok {
			return TokenProductType
		}
		return TokenWord
	}
}

// isModelCode reports an uppercase/digit/dash mix containing at least one of
// each character class, e.g. "SDCZ48-128G".
func isModelCode(text string) bool {
	if !reTokenCodeSet.MatchString(text) {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range text {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ClassifyLine assigns a line type; the first matching rule wins.
func ClassifyLine(line string) LineType {
	switch {
	case reLineCapacity.MatchString(line):
		return LineCapacityInfo
	case reLineModel.MatchString(line):
		return LineModelInfo
	case len(strings.Fields(line)) <= 4 && hasUppercase(line):
		return LineBrandOrSeries
	case strings.Contains(line, "$") || reLineMoney.MatchString(line):
		return LinePriceInfo
	case reLineDims.MatchString(line):
		return LineDimensions
	default:
		return LineDescriptive
	}
}

func hasUppercase(line string) bool {
	return strings.IndexFunc(line, unicode.IsUpper) >= 0
}
