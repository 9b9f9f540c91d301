package stats

import (
	"fmt"
	"math"

	"fjacquet/sales-insights/internal/parsererror"

	"gonum.org/v1/gonum/stat"
)

// RegressionResult is a simple least-squares fit of y on x.
type RegressionResult struct {
	X         string  `json:"x" yaml:"x"`
	Y         string  `json:"y" yaml:"y"`
	Slope     float64 `json:"slope" yaml:"slope"`
	Intercept float64 `json:"intercept" yaml:"intercept"`
	RSquared  float64 `json:"r_squared" yaml:"r_squared"`
	RMSE      float64 `json:"rmse" yaml:"rmse"`
	Strength  string  `json:"strength" yaml:"strength"`
}

// RegressionStrength labels R²: Strong above 0.5, Moderate above 0.3, Weak otherwise.
func RegressionStrength(r2 float64) string {
	switch {
	case r2 > 0.5:
		return "Strong"
	case r2 > 0.3:
		return "Moderate"
	default:
		return "Weak"
	}
}

// SimpleLinearRegression fits y = intercept + slope·x with gonum and reports
// in-sample R² and RMSE. x and y must both vary.
func SimpleLinearRegression(xName string, x []float64, yName string, y []float64) (RegressionResult, error) {
	n := len(x)
	if n != len(y) {
		return RegressionResult{}, fmt.Errorf("regression: length mismatch %d != %d", n, len(y))
	}
	if n < 2 {
		return RegressionResult{}, &parsererror.InsufficientDataError{Operation: "regression", Need: 2, Got: n}
	}
	if stat.Variance(x, nil) == 0 {
		return RegressionResult{}, &parsererror.InsufficientDataError{Operation: "regression", Reason: xName + " has zero variance"}
	}
	if stat.Variance(y, nil) == 0 {
		return RegressionResult{}, &parsererror.InsufficientDataError{Operation: "regression", Reason: yName + " has zero variance"}
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)

	var sse float64
	for i := range x {
		residual := y[i] - (intercept + slope*x[i])
		sse += residual * residual
	}

	return RegressionResult{
		X: xName, Y: yName,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		RMSE:      math.Sqrt(sse / float64(n)),
		Strength:  RegressionStrength(r2),
	}, nil
}
