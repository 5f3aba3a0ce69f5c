// Package extract pulls structured product fields out of semantic units and
// raw OCR text. Each extractor is independent; ordering matters only through
// the fields already present on Info, which later extractors consult to
// avoid claiming the same text twice.
package extract

import "github.com/itemlens/itemlens/internal/refdata"

var tables = refdata.MustLoad()

// Info accumulates extracted product fields. Zero values mean the field was
// not found.
type Info struct {
	Name        string
	Brand       string
	ProductLine string
	ModelNumber string
	Capacity    string
	Category    string
	Description string
	Condition   string
	Price       float64
	Dimensions  string
}
