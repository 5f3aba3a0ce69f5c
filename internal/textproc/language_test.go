package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreEnglishLikelihood_ProductLine(t *testing.T) {
	score := ScoreEnglishLikelihood("SanDisk Ultra 128GB USB 3.0 Flash Drive")
	// Four tech keywords, a known brand, no penalties: clamps at 1.0.
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestScoreEnglishLikelihood_ForeignLine(t *testing.T) {
	score := ScoreEnglishLikelihood("garantía de calidad")
	// Two foreign indicator words, a foreign function word, and an accent.
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestScoreEnglishLikelihood_NeutralLine(t *testing.T) {
	score := ScoreEnglishLikelihood("random words here")
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestScoreEnglishLikelihood_FunctionWords(t *testing.T) {
	base := ScoreEnglishLikelihood("packaging contents listed")
	withFn := ScoreEnglishLikelihood("the packaging contents listed")
	assert.Greater(t, withFn, base)
}

func TestScoreEnglishLikelihood_Deterministic(t *testing.T) {
	line := "Kingston DataTraveler 64GB"
	first := ScoreEnglishLikelihood(line)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ScoreEnglishLikelihood(line))
	}
}

func TestScoreEnglishLikelihood_EmptyLine(t *testing.T) {
	assert.Zero(t, ScoreEnglishLikelihood(""))
	assert.Zero(t, ScoreEnglishLikelihood("   "))
}

func TestScoreEnglishLikelihood_Bounds(t *testing.T) {
	lines := []string{
		"SanDisk Ultra Flair USB drive with high speed storage and memory card",
		"garantía garantie qualité velocidad almacenamiento mémoire",
		"",
		"é é é é é é é é",
	}
	for _, line := range lines {
		score := ScoreEnglishLikelihood(line)
		assert.GreaterOrEqual(t, score, 0.0, "line %q", line)
		assert.LessOrEqual(t, score, 1.0, "line %q", line)
	}
}

func TestCountAccentedRunes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"plain ascii", 0},
		{"café", 1},
		{"número móvil", 2},
		{"garantía", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countAccentedRunes(tt.in), "input %q", tt.in)
	}
}
