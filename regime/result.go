package regime

import "sort"

// Threshold holds the quantities fixed for the whole scan.
type Threshold struct {
	TStat  float64 // |t| critical value with 2l-2 degrees of freedom
	AvgVar float64 // Average variance of all length-l windows
	Diff   float64 // Minimum significant difference between regime means
}

// Regime is a contiguous run data[Start:End] between accepted shifts.
type Regime struct {
	Start int
	End   int
	Mean  float64
}

// Len returns the number of observations in the regime.
func (r Regime) Len() int {
	return r.End - r.Start
}

// Result represents the outcome of one detection run.
type Result struct {
	// Shifts holds accepted shift indices in ascending order.
	Shifts []int
	// RSI has one entry per observation; zero except at accepted shifts.
	RSI []float64
	// Candidates holds every index that exceeded the bounds and was tested.
	Candidates []int
	Threshold  Threshold
	// Regimes cover [0, n) and are split at every accepted shift.
	Regimes []Regime
}

// ShiftCount returns the number of accepted shifts.
func (r *Result) ShiftCount() int {
	return len(r.Shifts)
}

// Rejected returns the candidates that were not accepted.
func (r *Result) Rejected() []int {
	out := []int{}
	for _, c := range r.Candidates {
		if r.RSI[c] == 0 {
			out = append(out, c)
		}
	}
	return out
}

// RegimeAt returns the position in Regimes of the regime containing index i,
// or -1 when i is out of range.
func (r *Result) RegimeAt(i int) int {
	if i < 0 || i >= len(r.RSI) {
		return -1
	}
	// Number of shifts at or before i
	return sort.Search(len(r.Shifts), func(k int) bool { return r.Shifts[k] > i })
}

func segment(data []float64, shifts []int) []Regime {
	regimes := make([]Regime, 0, len(shifts)+1)
	start := 0
	for k := 0; k <= len(shifts); k++ {
		end := len(data)
		if k < len(shifts) {
			end = shifts[k]
		}
		regimes = append(regimes, Regime{
			Start: start,
			End:   end,
			Mean:  mean(data[start:end]),
		})
		start = end
	}
	return regimes
}
