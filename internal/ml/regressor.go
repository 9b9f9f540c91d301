package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"fjacquet/sales-insights/internal/parsererror"
)

// Regressor is a model that can be trained on a feature matrix and predict a
// continuous target.
type Regressor interface {
	Name() string
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

var errNotFitted = errors.New("model has not been fitted")

// LinearRegression is ordinary least squares on all features with an
// intercept.
type LinearRegression struct {
	Intercept    float64
	Coefficients []float64
	fitted       bool
}

// NewLinearRegression returns an unfitted OLS model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

func (m *LinearRegression) Name() string { return "Linear Regression" }

// rankTolerance is the relative singular value cutoff used to decide the
// effective rank of the design matrix.
const rankTolerance = 1e-10

// Fit finds the minimum-norm least squares solution on [1 | X] through an SVD.
// A rank-deficient design, such as a constant feature, still fits: the
// redundant directions get no weight.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || n != len(y) {
		return fmt.Errorf("linear regression: %d rows and %d targets", n, len(y))
	}
	p := len(X[0])
	if n < p+1 {
		return &parsererror.InsufficientDataError{Operation: "linear regression", Need: p + 1, Got: n}
	}

	design := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("linear regression: row %d has %d features, want %d", i, len(row), p)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return errors.New("linear regression: singular value decomposition failed")
	}
	rank := svd.Rank(rankTolerance)
	if rank < 1 {
		return errors.New("linear regression: design matrix has rank 0")
	}
	var beta mat.VecDense
	svd.SolveVecTo(&beta, mat.NewVecDense(n, append([]float64(nil), y...)), rank)

	m.Intercept = beta.AtVec(0)
	m.Coefficients = make([]float64, p)
	for j := range m.Coefficients {
		m.Coefficients[j] = beta.AtVec(j + 1)
	}
	m.fitted = true
	return nil
}

// Predict applies the fitted coefficients to each row of X.
func (m *LinearRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, errNotFitted
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.Coefficients) {
			return nil, fmt.Errorf("linear regression: row %d has %d features, want %d", i, len(row), len(m.Coefficients))
		}
		v := m.Intercept
		for j, x := range row {
			v += m.Coefficients[j] * x
		}
		out[i] = v
	}
	return out, nil
}

// SingleFeatureRegression regresses the target on one feature column only.
// It serves as a baseline for the multivariate model.
type SingleFeatureRegression struct {
	Feature   string
	Column    int
	Intercept float64
	Slope     float64
	fitted    bool
}

// NewSingleFeatureRegression returns a baseline on the named feature column.
func NewSingleFeatureRegression(feature string, column int) *SingleFeatureRegression {
	return &SingleFeatureRegression{Feature: feature, Column: column}
}

func (m *SingleFeatureRegression) Name() string {
	return fmt.Sprintf("Baseline (%s only)", m.Feature)
}

func (m *SingleFeatureRegression) Fit(X [][]float64, y []float64) error {
	if len(X) < 2 || len(X) != len(y) {
		return &parsererror.InsufficientDataError{Operation: m.Name(), Need: 2, Got: len(X)}
	}
	x := make([]float64, len(X))
	for i, row := range X {
		if m.Column >= len(row) {
			return fmt.Errorf("%s: feature column %d out of range", m.Name(), m.Column)
		}
		x[i] = row[m.Column]
	}
	m.Intercept, m.Slope = stat.LinearRegression(x, y, nil, false)
	m.fitted = true
	return nil
}

func (m *SingleFeatureRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, errNotFitted
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if m.Column >= len(row) {
			return nil, fmt.Errorf("%s: feature column %d out of range", m.Name(), m.Column)
		}
		out[i] = m.Intercept + m.Slope*row[m.Column]
	}
	return out, nil
}
