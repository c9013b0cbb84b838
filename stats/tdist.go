package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TCritical returns the absolute value of the Student's t quantile at
// cumulative probability p with df degrees of freedom.
//
// For p < 0.5 this is the two-sided critical value used by the regime
// shift threshold: TCritical(0.05, 18) ≈ 1.734.
func TCritical(p, df float64) (float64, error) {
	if !(p > 0 && p < 1) {
		return 0, fmt.Errorf("probability %v outside (0, 1)", p)
	}
	if !(df > 0) || math.IsInf(df, 0) {
		return 0, fmt.Errorf("degrees of freedom %v must be positive", df)
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return math.Abs(t.Quantile(p)), nil
}
