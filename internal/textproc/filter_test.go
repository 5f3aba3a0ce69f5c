package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEnglishText_DropsForeignLines(t *testing.T) {
	raw := "SanDisk Ultra 128GB USB Flash Drive\ngarantía de calidad del producto"
	filtered := FilterEnglishText(raw)

	assert.Contains(t, filtered, "SanDisk Ultra 128GB")
	assert.NotContains(t, filtered, "garantía")
}

func TestFilterEnglishText_ReranksBestFirst(t *testing.T) {
	// Both lines pass the threshold; the higher-scoring one must come first
	// even though it appears second in the input.
	raw := "random words here\nSanDisk Ultra 128GB USB Flash Drive"
	filtered := FilterEnglishText(raw)

	lines := strings.Split(filtered, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SanDisk Ultra 128GB USB Flash Drive", lines[0])
	assert.Equal(t, "random words here", lines[1])
}

func TestFilterEnglishText_FailOpen(t *testing.T) {
	// Nothing passes the threshold: the original text comes back unchanged.
	raw := "garantía de calidad\nqualité garantie française"
	assert.Equal(t, raw, FilterEnglishText(raw))
}

func TestFilterEnglishText_NeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{
		"x",
		"garantía",
		"de la le du",
		"SanDisk",
		"   padded   ",
	}
	for _, in := range inputs {
		assert.NotEmpty(t, FilterEnglishText(in), "input %q", in)
	}
}

func TestCleanLine_Accepts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SanDisk Ultra 128GB", "SanDisk Ultra 128GB"},
		{"  spaced    out   text  ", "spaced out text"},
		{"garantia de almacenamiento usb", "garantia de almacenamiento usb"}, // tech word rescues it
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanLine(tt.in), "input %q", tt.in)
	}
}

func TestCleanLine_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"uppercase run", strings.Repeat("A", 20)},
		{"regulatory code", "FCC ID: 2ABCD-XYZ123"},
		{"long digit run", "4006917788992210011"},
		{"hex run", "DEADBEEFCAFEBABE0123456789abcdef"},
		{"url", "visit https://example.com/warranty"},
		{"www url", "www.example.com"},
		{"email", "support@example.com"},
		{"too many accents", "número de teléfono móvil"},
		{"foreign without tech rescue", "garantia limitada disponible"},
		{"blank", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, CleanLine(tt.in))
		})
	}
}
