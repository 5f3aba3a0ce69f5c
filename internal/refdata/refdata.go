// Package refdata holds the static reference tables the analysis pipeline
// matches against: known brands per category, logo spelling variants,
// product-line vocabularies, condition buckets, and the word lists used by
// language scoring. The tables are embedded at build time and parsed once;
// they are never mutated after Load.
package refdata

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// Category describes one product category with its match keywords and the
// brands commonly seen in that category. Declaration order in tables.yaml is
// the tie-break order for classification.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Brands   []string `yaml:"brands"`
}

// LogoPattern maps a canonical brand name to the spelling variants that count
// as logo evidence when found in OCR text or image labels.
type LogoPattern struct {
	Brand    string   `yaml:"brand"`
	Patterns []string `yaml:"patterns"`
}

// ConditionBucket groups keywords that imply a physical condition grade.
type ConditionBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables is the full set of reference data.
type Tables struct {
	EnglishTechKeywords   []string          `yaml:"english_tech_keywords"`
	ForeignIndicatorWords []string          `yaml:"foreign_indicator_words"`
	Categories            []Category        `yaml:"categories"`
	LogoPatterns          []LogoPattern     `yaml:"logo_patterns"`
	ProductLines          ProductLineTables `yaml:"product_lines"`
	Conditions            []ConditionBucket `yaml:"conditions"`
	NoiseWords            []string          `yaml:"noise_words"`
}

// ProductLineTables holds series/sub-brand vocabularies.
type ProductLineTables struct {
	Generic []string            `yaml:"generic"`
	ByBrand map[string][]string `yaml:"by_brand"`
}

var (
	loadOnce sync.Once
	loaded   *Tables
	loadErr  error
)

// Load parses the embedded tables. The result is cached; subsequent calls
// return the same instance.
func Load() (*Tables, error) {
	loadOnce.Do(func() {
		var t Tables
		if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
			loadErr = fmt.Errorf("parse reference tables: %w", err)
			return
		}
		if err := t.validate(); err != nil {
			loadErr = fmt.Errorf("invalid reference tables: %w", err)
			return
		}
		loaded = &t
	})
	return loaded, loadErr
}

// MustLoad is Load for package-level initialization of consumers. The tables
// are compiled in, so a failure here is a build defect, not a runtime
// condition.
func MustLoad() *Tables {
	t, err := Load()
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	for _, c := range t.Categories {
		if c.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", c.Name)
		}
	}
	for _, lp := range t.LogoPatterns {
		if lp.Brand == "" || len(lp.Patterns) == 0 {
			return fmt.Errorf("logo pattern entry missing brand or patterns")
		}
	}
	if len(t.NoiseWords) == 0 {
		return fmt.Errorf("no noise words defined")
	}
	return nil
}

// AllBrands returns every known brand across all categories, de-duplicated,
// in category declaration order.
func (t *Tables) AllBrands() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range t.Categories {
		for _, b := range c.Brands {
			key := strings.ToLower(b)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, b)
		}
	}
	return out
}

// CategoryBrands returns the brand list for the named category, or nil if the
// category is unknown.
func (t *Tables) CategoryBrands(name string) []string {
	for _, c := range t.Categories {
		if c.Name == name {
			return c.Brands
		}
	}
	return nil
}

// BrandProductLines returns the series vocabulary for a brand followed by the
// generic series words. Brand lookup is case-insensitive.
func (t *Tables) BrandProductLines(brand string) []string {
	var out []string
	for name, lines := range t.ProductLines.ByBrand {
		if strings.EqualFold(name, brand) {
			out = append(out, lines...)
			break
		}
	}
	return append(out, t.ProductLines.Generic...)
}
