package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itemlens/itemlens/internal/labeler"
	"github.com/itemlens/itemlens/internal/textproc"
)

func TestFindBrand_LogoWins(t *testing.T) {
	// A detected logo outranks a competing brand in high-quality text.
	units := []textproc.Unit{unit("Samsung Evo Plus 128GB", 95)}
	got := FindBrand(units, nil, "Memory Card", []string{"SanDisk"})
	assert.Equal(t, "SanDisk", got)
}

func TestFindBrand_CategoryBrandsFirst(t *testing.T) {
	units := []textproc.Unit{unit("crucial mx500 internal ssd", 80)}
	assert.Equal(t, "Crucial", FindBrand(units, nil, "SSD", nil))
}

func TestFindBrand_CategoryOrderBreaksTies(t *testing.T) {
	// Both brands appear; the one listed first for the category wins.
	units := []textproc.Unit{unit("kingston vs samsung ssd comparison", 80)}
	assert.Equal(t, "Samsung", FindBrand(units, nil, "SSD", nil))
}

func TestFindBrand_AllBrandsWhenCategoryUnknown(t *testing.T) {
	units := []textproc.Unit{unit("Seagate portable device", 70)}
	assert.Equal(t, "Seagate", FindBrand(units, nil, "", nil))
}

func TestFindBrand_SearchDepthLimit(t *testing.T) {
	units := make([]textproc.Unit, 0, 8)
	for i := 0; i < 7; i++ {
		units = append(units, unit("high speed storage device line", 90))
	}
	units = append(units, unit("sandisk", 10))

	assert.Equal(t, "", FindBrand(units, nil, "", nil))
}

func TestFindBrand_LabelFallback(t *testing.T) {
	labels := []labeler.Label{{Text: "kingston flash drive", Confidence: 0.8}}
	assert.Equal(t, "Kingston", FindBrand(nil, labels, "", nil))
}

func TestFindBrand_LabelConfidenceFloor(t *testing.T) {
	labels := []labeler.Label{{Text: "kingston flash drive", Confidence: 0.5}}
	assert.Equal(t, "", FindBrand(nil, labels, "", nil))
}

func TestFindBrand_CaseInsensitive(t *testing.T) {
	units := []textproc.Unit{unit("SANDISK ULTRA 64GB", 85)}
	assert.Equal(t, "SanDisk", FindBrand(units, nil, "USB Flash Drive", nil))
}

func TestFindBrand_NoEvidence(t *testing.T) {
	units := []textproc.Unit{unit("portable storage device", 60)}
	assert.Equal(t, "", FindBrand(units, nil, "", nil))
}
