package pricing

// Range is an inclusive [Min, Max] interval in meters.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls within the inclusive bounds.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Classify maps a continuous measurement to the index of the first bucket
// whose inclusive bounds contain it. Values above the last bucket's max
// clamp to the last index; values below the first bucket's min clamp to
// index 0. Both clamps are deliberate, not errors.
func Classify(value float64, table []Range) int {
	for i, r := range table {
		if r.Contains(value) {
			return i
		}
	}
	if len(table) > 0 && value < table[0].Min {
		return 0
	}
	return len(table) - 1
}

// Fixed bucket tables. The bounds are business data shared with the
// range headers rendered by pricing UIs and with the generated curtain
// price matrix. Do not re-derive.

var WidthBuckets = []Range{
	{Min: 0.00, Max: 1.39},
	{Min: 1.40, Max: 1.59},
	{Min: 1.60, Max: 1.79},
	{Min: 1.80, Max: 1.99},
	{Min: 2.00, Max: 2.19},
	{Min: 2.20, Max: 2.39},
	{Min: 2.40, Max: 2.59},
	{Min: 2.60, Max: 2.79},
	{Min: 2.80, Max: 2.99},
	{Min: 3.00, Max: 3.19},
	{Min: 3.20, Max: 3.39},
	{Min: 3.40, Max: 3.59},
	{Min: 3.60, Max: 3.79},
	{Min: 3.80, Max: 3.99},
	{Min: 4.00, Max: 4.19},
	{Min: 4.20, Max: 4.39},
	{Min: 4.40, Max: 4.59},
	{Min: 4.60, Max: 4.79},
	{Min: 4.80, Max: 4.99},
	{Min: 5.00, Max: 5.19},
	{Min: 5.20, Max: 5.39},
	{Min: 5.40, Max: 5.59},
	{Min: 5.60, Max: 5.79},
	{Min: 5.80, Max: 5.99},
	{Min: 6.00, Max: 6.49},
	{Min: 6.50, Max: 6.99},
	{Min: 7.00, Max: 7.49},
	{Min: 7.50, Max: 7.99},
	{Min: 8.00, Max: 20.00},
}
var LengthBuckets = []Range{
	{Min: 1.00, Max: 1.09},
	{Min: 1.10, Max: 1.19},
	{Min: 1.20, Max: 1.29},
	{Min: 1.30, Max: 1.39},
	{Min: 1.40, Max: 1.49},
	{Min: 1.50, Max: 1.59},
	{Min: 1.60, Max: 1.69},
	{Min: 1.70, Max: 1.79},
	{Min: 1.80, Max: 1.89},
	{Min: 1.90, Max: 1.99},
	{Min: 2.00, Max: 2.09},
	{Min: 2.10, Max: 2.19},
	{Min: 2.20, Max: 2.29},
	{Min: 2.30, Max: 2.39},
	{Min: 2.40, Max: 2.49},
	{Min: 2.50, Max: 2.59},
	{Min: 2.60, Max: 2.69},
	{Min: 2.70, Max: 2.79},
	{Min: 2.80, Max: 2.89},
	{Min: 2.90, Max: 2.99},
	{Min: 3.00, Max: 3.09},
	{Min: 3.10, Max: 3.19},
	{Min: 3.20, Max: 3.29},
	{Min: 3.30, Max: 3.39},
	{Min: 3.40, Max: 3.49},
	{Min: 3.50, Max: 3.59},
	{Min: 3.60, Max: 3.69},
	{Min: 3.70, Max: 3.79},
	{Min: 3.80, Max: 3.89},
	{Min: 3.90, Max: 3.99},
	{Min: 4.00, Max: 4.09},
	{Min: 4.10, Max: 4.19},
	{Min: 4.20, Max: 4.29},
	{Min: 4.30, Max: 4.39},
	{Min: 4.40, Max: 4.49},
	{Min: 4.50, Max: 4.99},
	{Min: 5.00, Max: 5.49},
	{Min: 5.50, Max: 5.99},
	{Min: 6.00, Max: 6.49},
	{Min: 6.50, Max: 6.99},
	{Min: 7.00, Max: 7.49},
	{Min: 7.50, Max: 7.99},
	{Min: 8.00, Max: 8.49},
	{Min: 8.50, Max: 8.99},
	{Min: 9.00, Max: 9.49},
}
var SpecialLengthBuckets = []Range{
	{Min: 0.00, Max: 0.99},
	{Min: 1.00, Max: 1.39},
	{Min: 1.40, Max: 1.79},
	{Min: 1.80, Max: 2.09},
	{Min: 2.10, Max: 2.39},
	{Min: 2.40, Max: 2.59},
}
