package numeric

import "slices"

// Bin is one equal-width histogram bucket covering [Start, End).
// The last bin also includes its upper edge.
type Bin struct {
	Start     float64
	End       float64
	Count     int
	Frequency float64
}

// Histogram buckets values into the requested number of equal-width bins
// spanning [min, max]. When every value is identical a single bin is returned.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := slices.Min(values), slices.Max(values)
	total := float64(len(values))

	if hi == lo {
		return []Bin{{Start: lo, End: hi, Count: len(values), Frequency: 1}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	out[bins-1].End = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}

	for i := range out {
		out[i].Frequency = float64(out[i].Count) / total
	}
	return out
}
