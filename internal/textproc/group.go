package textproc

// shortDescriptiveLimit bounds the text length of descriptive units that are
// allowed to merge with a neighbor.
const shortDescriptiveLimit = 20

// GroupRelated merges adjacent units that describe one continuous fact, such
// as a brand line followed by its model line. A single left-to-right pass:
// each unit participates in at most one merge, and survivors keep their
// relative order. The result is never longer than the input.
func GroupRelated(units []Unit) []Unit {
	var out []Unit
	i := 0
	for i < len(units) {
		if i+1 < len(units) && shouldMerge(units[i], units[i+1]) {
			out = append(out, mergeUnits(units[i], units[i+1]))
			i += 2
			continue
		}
		out = append(out, units[i])
		i++
	}
	return out
}

func shouldMerge(a, b Unit) bool {
	if abs(a.Position-b.Position) > 1 {
		return false
	}
	if a.Type == LineBrandOrSeries && (b.Type == LineModelInfo || b.Type == LineCapacityInfo) {
		return true
	}
	return a.Type == LineDescriptive && b.Type == LineDescriptive &&
		len(a.Text) < shortDescriptiveLimit && len(b.Text) < shortDescriptiveLimit
}

// mergeUnits concatenates text and token lists; all other metadata comes
// from the first unit.
func mergeUnits(a, b Unit) Unit {
	merged := a
	merged.Text = a.Text + " " + b.Text
	merged.Tokens = append(append([]Token{}, a.Tokens...), b.Tokens...)
	return merged
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
