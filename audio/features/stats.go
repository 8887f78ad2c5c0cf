package features

import "math"

// Summary holds population statistics of a series.
type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Range returns Max - Min.
func (s Summary) Range() float64 { return s.Max - s.Min }

// summarize computes population statistics; an empty series is all zeros.
func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	s := Summary{Min: xs[0], Max: xs[0]}
	sum := 0.0
	for _, x := range xs {
		sum += x
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	s.Mean = sum / float64(len(xs))
	v := 0.0
	for _, x := range xs {
		d := x - s.Mean
		v += d * d
	}
	s.Std = math.Sqrt(v / float64(len(xs)))
	return s
}
