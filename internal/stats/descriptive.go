// Package stats runs the descriptive statistics, confidence intervals,
// hypothesis tests, regression and correlation tests of the stats stage.
// Distributions and estimators come from gonum; this package only wires them.
package stats

import (
	"math"
	"sort"

	"fjacquet/sales-insights/internal/parsererror"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Descriptive summarizes one numeric column.
type Descriptive struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Mode   float64 `json:"mode" yaml:"mode"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Range  float64 `json:"range" yaml:"range"`
}

// Describe computes count, mean, median, mode, sample standard deviation,
// min, max and range. A single value has a standard deviation of 0.
func Describe(values []float64) (Descriptive, error) {
	if len(values) == 0 {
		return Descriptive{}, &parsererror.InsufficientDataError{Operation: "describe", Need: 1, Got: 0}
	}

	d := Descriptive{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		Median: Median(values),
		Mode:   Mode(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if len(values) > 1 {
		d.StdDev = stat.StdDev(values, nil)
	}
	d.Range = d.Max - d.Min
	return d, nil
}

// Median returns the middle value, averaging the two middle values for an
// even count. It returns NaN for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mode returns the most frequent value. Ties resolve to the smallest value.
// It returns NaN for an empty slice.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := math.Inf(1), 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

// ConfidenceInterval is a two-sided interval around a sample mean.
type ConfidenceInterval struct {
	Level         float64 `json:"level" yaml:"level"`
	Mean          float64 `json:"mean" yaml:"mean"`
	StandardError float64 `json:"standard_error" yaml:"standard_error"`
	MarginOfError float64 `json:"margin_of_error" yaml:"margin_of_error"`
	Lower         float64 `json:"lower" yaml:"lower"`
	Upper         float64 `json:"upper" yaml:"upper"`
}

// MeanConfidenceInterval computes mean ± t((1+level)/2, n-1) · SEM using the
// Student's t distribution. It needs at least two values and 0 < level < 1.
func MeanConfidenceInterval(values []float64, level float64) (ConfidenceInterval, error) {
	n := len(values)
	if n < 2 {
		return ConfidenceInterval{}, &parsererror.InsufficientDataError{Operation: "confidence interval", Need: 2, Got: n}
	}
	if level <= 0 || level >= 1 {
		return ConfidenceInterval{}, &parsererror.InsufficientDataError{
			Operation: "confidence interval",
			Reason:    "confidence level must lie strictly between 0 and 1",
		}
	}

	mean, std := stat.MeanStdDev(values, nil)
	sem := std / math.Sqrt(float64(n))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile((1 + level) / 2)
	margin := t * sem

	return ConfidenceInterval{
		Level:         level,
		Mean:          mean,
		StandardError: sem,
		MarginOfError: margin,
		Lower:         mean - margin,
		Upper:         mean + margin,
	}, nil
}
