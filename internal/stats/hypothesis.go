package stats

import (
	"fmt"
	"math"

	"fjacquet/sales-insights/internal/parsererror"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Group is a named sample.
type Group struct {
	Name   string
	Values []float64
}

// ANOVAResult is the outcome of a one-way analysis of variance.
type ANOVAResult struct {
	Groups      []string `json:"groups" yaml:"groups"`
	F           float64  `json:"f_statistic" yaml:"f_statistic"`
	PValue      float64  `json:"p_value" yaml:"p_value"`
	DFBetween   int      `json:"df_between" yaml:"df_between"`
	DFWithin    int      `json:"df_within" yaml:"df_within"`
	Significant bool     `json:"significant" yaml:"significant"`
}

// OneWayANOVA tests whether the group means differ. It needs at least two
// groups, every group non-empty, more observations than groups, and some
// variation within the groups.
func OneWayANOVA(groups []Group) (ANOVAResult, error) {
	k := len(groups)
	if k < 2 {
		return ANOVAResult{}, &parsererror.InsufficientDataError{Operation: "anova", Need: 2, Got: k, Reason: fmt.Sprintf("need at least 2 groups, got %d", k)}
	}

	var all []float64
	names := make([]string, k)
	for i, g := range groups {
		if len(g.Values) == 0 {
			return ANOVAResult{}, &parsererror.InsufficientDataError{Operation: "anova", Reason: fmt.Sprintf("group %q is empty", g.Name)}
		}
		names[i] = g.Name
		all = append(all, g.Values...)
	}
	n := len(all)
	if n <= k {
		return ANOVAResult{}, &parsererror.InsufficientDataError{Operation: "anova", Need: k + 1, Got: n}
	}

	grand := stat.Mean(all, nil)
	var ssBetween, ssWithin float64
	for _, g := range groups {
		mean := stat.Mean(g.Values, nil)
		ssBetween += float64(len(g.Values)) * (mean - grand) * (mean - grand)
		if len(g.Values) > 1 {
			ssWithin += stat.Variance(g.Values, nil) * float64(len(g.Values)-1)
		}
	}
	if ssWithin == 0 {
		return ANOVAResult{}, &parsererror.InsufficientDataError{Operation: "anova", Reason: "no variation within groups"}
	}

	dfB, dfW := k-1, n-k
	f := (ssBetween / float64(dfB)) / (ssWithin / float64(dfW))
	p := distuv.F{D1: float64(dfB), D2: float64(dfW)}.Survival(f)

	return ANOVAResult{Groups: names, F: f, PValue: p, DFBetween: dfB, DFWithin: dfW}, nil
}

// TTestResult is the outcome of an independent two-sample t-test.
type TTestResult struct {
	GroupA      string  `json:"group_a" yaml:"group_a"`
	GroupB      string  `json:"group_b" yaml:"group_b"`
	MeanA       float64 `json:"mean_a" yaml:"mean_a"`
	MeanB       float64 `json:"mean_b" yaml:"mean_b"`
	T           float64 `json:"t_statistic" yaml:"t_statistic"`
	PValue      float64 `json:"p_value" yaml:"p_value"`
	DF          int     `json:"df" yaml:"df"`
	Significant bool    `json:"significant" yaml:"significant"`
}

// IndependentTTest runs a two-sided Student's t-test with pooled variance.
// Each group needs at least two values and the pooled variance must be positive.
func IndependentTTest(a, b Group) (TTestResult, error) {
	na, nb := len(a.Values), len(b.Values)
	if na < 2 || nb < 2 {
		got := na
		if nb < na {
			got = nb
		}
		return TTestResult{}, &parsererror.InsufficientDataError{Operation: "t-test", Need: 2, Got: got}
	}

	meanA, varA := stat.MeanVariance(a.Values, nil)
	meanB, varB := stat.MeanVariance(b.Values, nil)
	df := na + nb - 2
	pooled := (float64(na-1)*varA + float64(nb-1)*varB) / float64(df)
	if pooled == 0 {
		return TTestResult{}, &parsererror.InsufficientDataError{Operation: "t-test", Reason: "both groups have zero variance"}
	}

	t := (meanA - meanB) / math.Sqrt(pooled*(1/float64(na)+1/float64(nb)))
	p := 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}.Survival(math.Abs(t))

	return TTestResult{
		GroupA: a.Name, GroupB: b.Name,
		MeanA: meanA, MeanB: meanB,
		T: t, PValue: p, DF: df,
	}, nil
}

// CorrelationResult is a Pearson correlation with its two-sided p-value.
type CorrelationResult struct {
	X           string  `json:"x" yaml:"x"`
	Y           string  `json:"y" yaml:"y"`
	R           float64 `json:"r" yaml:"r"`
	PValue      float64 `json:"p_value" yaml:"p_value"`
	N           int     `json:"n" yaml:"n"`
	Strength    string  `json:"strength" yaml:"strength"`
	Direction   string  `json:"direction" yaml:"direction"`
	Significant bool    `json:"significant" yaml:"significant"`
}

// CorrelationStrength labels |r|: Strong above 0.7, Moderate above 0.4, Weak otherwise.
func CorrelationStrength(r float64) string {
	switch a := math.Abs(r); {
	case a > 0.7:
		return "Strong"
	case a > 0.4:
		return "Moderate"
	default:
		return "Weak"
	}
}

// PearsonTest computes r with gonum and tests it with
// t = r·√((n−2)/(1−r²)) on n−2 degrees of freedom.
func PearsonTest(xName string, x []float64, yName string, y []float64) (CorrelationResult, error) {
	n := len(x)
	if n != len(y) {
		return CorrelationResult{}, fmt.Errorf("pearson: length mismatch %d != %d", n, len(y))
	}
	if n < 3 {
		return CorrelationResult{}, &parsererror.InsufficientDataError{Operation: "pearson", Need: 3, Got: n}
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return CorrelationResult{}, &parsererror.InsufficientDataError{Operation: "pearson", Reason: "constant input has no correlation"}
	}

	r := stat.Correlation(x, y, nil)
	p := 0.0
	if rem := 1 - r*r; rem > 0 {
		t := r * math.Sqrt(float64(n-2)/rem)
		p = 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}.Survival(math.Abs(t))
	}

	direction := "negative"
	if r > 0 {
		direction = "positive"
	}
	return CorrelationResult{
		X: xName, Y: yName, R: r, PValue: p, N: n,
		Strength: CorrelationStrength(r), Direction: direction,
	}, nil
}
