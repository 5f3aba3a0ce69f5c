package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		text   string
		want   float64
		wantOK bool
	}{
		{"was $1,234.56 at retail", 1234.56, true},
		{"sale $19.99 today", 19.99, true},
		{"$ 25", 25, true},
		{"$0.00", 0, false},
		{"$1234567.89", 0, false},
		{"no price mentioned", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Price(tt.text)
		assert.Equal(t, tt.wantOK, ok, "text: %q", tt.text)
		if tt.wantOK {
			assert.InDelta(t, tt.want, got, 1e-9, "text: %q", tt.text)
		}
	}
}

func TestPrice_FirstMatchOnly(t *testing.T) {
	// An out-of-bounds first match is rejected outright, not skipped.
	_, ok := Price("$0.00 or $19.99")
	assert.False(t, ok)
}
