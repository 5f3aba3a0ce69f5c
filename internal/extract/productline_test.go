package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itemlens/itemlens/internal/textproc"
)

func TestProductLine_BrandSpecific(t *testing.T) {
	units := []textproc.Unit{unit("SanDisk Cruzer Glide 32GB", 80)}
	assert.Equal(t, "Cruzer", ProductLine(units, "SanDisk"))
}

func TestProductLine_MultiWordPhrase(t *testing.T) {
	// No single-word vocabulary entry matches, so the phrase pass fires.
	units := []textproc.Unit{unit("WD My Passport 2TB", 80)}
	assert.Equal(t, "My Passport", ProductLine(units, "Western Digital"))
}

func TestProductLine_WholeWordOnly(t *testing.T) {
	// "Pro" must not fire inside "Professional".
	units := []textproc.Unit{unit("Professional equipment unit", 80)}
	assert.Equal(t, "", ProductLine(units, ""))
}

func TestProductLine_GenericFallback(t *testing.T) {
	units := []textproc.Unit{unit("Extreme performance model", 80)}
	assert.Equal(t, "Extreme", ProductLine(units, ""))
}

func TestProductLine_BrandVocabularyNeedsBrand(t *testing.T) {
	units := []textproc.Unit{unit("Kingston DataTraveler", 80)}
	assert.Equal(t, "", ProductLine(units, ""))
	assert.Equal(t, "DataTraveler", ProductLine(units, "Kingston"))
}
