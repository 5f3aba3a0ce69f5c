package analyze

// Result is the structured product record for one analyzed photo. Fields the
// pipeline could not determine are zero-valued; the consuming form treats
// them as blank and editable.
type Result struct {
	ItemName       string  `json:"item_name"`
	Brand          string  `json:"brand,omitempty"`
	ProductLine    string  `json:"product_line,omitempty"`
	ModelNumber    string  `json:"model_number,omitempty"`
	Capacity       string  `json:"capacity,omitempty"`
	Category       string  `json:"category,omitempty"`
	Description    string  `json:"description,omitempty"`
	Condition      string  `json:"condition,omitempty"`
	EstimatedPrice float64 `json:"estimated_price,omitempty"`
	Dimensions     string  `json:"dimensions,omitempty"`
	RawText        string  `json:"raw_text,omitempty"`
	Confidence     float64 `json:"confidence"`
}
