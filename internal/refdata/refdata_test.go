package refdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	require.NotNil(t, tables)

	assert.NotEmpty(t, tables.EnglishTechKeywords)
	assert.NotEmpty(t, tables.ForeignIndicatorWords)
	assert.NotEmpty(t, tables.Categories)
	assert.NotEmpty(t, tables.LogoPatterns)
	assert.NotEmpty(t, tables.Conditions)
	assert.NotEmpty(t, tables.NoiseWords)
}

func TestLoad_Cached(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestCategoryOrder_Deterministic(t *testing.T) {
	tables := MustLoad()

	// Classification tie-breaks rely on declaration order, so the first
	// category must stay stable.
	require.NotEmpty(t, tables.Categories)
	assert.Equal(t, "USB Flash Drive", tables.Categories[0].Name)
}

func TestAllBrands_Deduplicated(t *testing.T) {
	tables := MustLoad()
	brands := tables.AllBrands()
	require.NotEmpty(t, brands)

	seen := make(map[string]int)
	for _, b := range brands {
		seen[strings.ToLower(b)]++
	}
	for b, n := range seen {
		assert.Equal(t, 1, n, "brand %q appears %d times", b, n)
	}

	// Samsung appears in several categories but must be listed once.
	assert.Contains(t, brands, "Samsung")
}

func TestCategoryBrands(t *testing.T) {
	tables := MustLoad()

	assert.Contains(t, tables.CategoryBrands("SSD"), "Crucial")
	assert.Nil(t, tables.CategoryBrands("Toaster"))
}

func TestBrandProductLines(t *testing.T) {
	tables := MustLoad()

	lines := tables.BrandProductLines("SanDisk")
	assert.Contains(t, lines, "Cruzer")
	// Generic vocabulary is appended after the brand-specific entries.
	assert.Contains(t, lines, "Elite")

	// Unknown brands still get the generic list.
	generic := tables.BrandProductLines("NoSuchBrand")
	assert.Equal(t, tables.ProductLines.Generic, generic)

	// Lookup is case-insensitive.
	assert.Equal(t, lines, tables.BrandProductLines("sandisk"))
}

func TestConditionBucketOrder(t *testing.T) {
	tables := MustLoad()
	require.GreaterOrEqual(t, len(tables.Conditions), 5)
	assert.Equal(t, "New", tables.Conditions[0].Name)
	assert.Equal(t, "Poor", tables.Conditions[len(tables.Conditions)-1].Name)
}
