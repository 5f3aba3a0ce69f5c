package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessLine_ProductLine(t *testing.T) {
	q := AssessLine("SanDisk Ultra 128GB USB 3.0 Flash Drive")

	assert.True(t, q.IsUseful)
	assert.Greater(t, q.Score, 100.0)
	assert.InDelta(t, 1.0, q.Confidence, 1e-9)
}

func TestAssessLine_ShortFragment(t *testing.T) {
	q := AssessLine("abc")

	assert.False(t, q.IsUseful)
	assert.Less(t, q.Score, 35.0)
	assert.Less(t, q.Confidence, 0.35)
}

func TestAssessLine_KeywordBonusStacks(t *testing.T) {
	one := AssessLine("portable enclosure included")
	two := AssessLine("portable storage enclosure included")
	assert.Greater(t, two.Score, one.Score)
}

func TestAssessLine_SpecialCharacterPenalty(t *testing.T) {
	clean := AssessLine("two plain words here")
	noisy := AssessLine("!@#$ %^&* !@#$ %^&*")
	assert.Greater(t, clean.Score, noisy.Score)
}

func TestAssessLine_AccentPenalty(t *testing.T) {
	plain := AssessLine("limited warranty applies")
	accented := AssessLine("límited warránty applies")
	assert.Greater(t, plain.Score, accented.Score)
}

func TestAssessLine_LengthBuckets(t *testing.T) {
	// The 11-40 char bucket outranks the extremes.
	mid := AssessLine("steady product naming")
	long := AssessLine(strings.Repeat("verylongword ", 10))
	assert.Greater(t, mid.Score, long.Score)
}

func TestAssessLine_ConfidenceBounds(t *testing.T) {
	lines := []string{
		"",
		"a",
		"SanDisk Ultra 128GB USB 3.0 Flash Drive with high speed storage",
		strings.Repeat("#", 50),
		"qualité garantie",
	}
	for _, line := range lines {
		q := AssessLine(line)
		assert.GreaterOrEqual(t, q.Confidence, 0.0, "line %q", line)
		assert.LessOrEqual(t, q.Confidence, 1.0, "line %q", line)
	}
}
