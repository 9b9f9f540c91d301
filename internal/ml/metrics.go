package ml

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics scores predictions against the true target.
type Metrics struct {
	MSE  float64 `json:"mse" yaml:"mse"`
	RMSE float64 `json:"rmse" yaml:"rmse"`
	MAE  float64 `json:"mae" yaml:"mae"`
	R2   float64 `json:"r2" yaml:"r2"`
}

// Evaluate computes MSE, RMSE, MAE and R². R² is NaN when the true values
// are constant.
func Evaluate(actual, predicted []float64) (Metrics, error) {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metrics{}, fmt.Errorf("evaluate: %d actual and %d predicted values", len(actual), len(predicted))
	}
	var sq, abs float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sq += d * d
		abs += math.Abs(d)
	}
	n := float64(len(actual))
	mse := sq / n
	return Metrics{
		MSE:  mse,
		RMSE: math.Sqrt(mse),
		MAE:  abs / n,
		R2:   stat.RSquaredFrom(predicted, actual, nil),
	}, nil
}

// Importance is the relative weight of one feature in a fitted linear model.
type Importance struct {
	Feature string  `json:"feature" yaml:"feature"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// FeatureImportance normalizes the absolute coefficients of a model trained
// on standardized features so they sum to one, sorted by weight descending.
func FeatureImportance(model *LinearRegression, features []string) ([]Importance, error) {
	if len(model.Coefficients) != len(features) {
		return nil, fmt.Errorf("feature importance: %d coefficients for %d features", len(model.Coefficients), len(features))
	}
	var total float64
	for _, c := range model.Coefficients {
		total += math.Abs(c)
	}
	out := make([]Importance, len(features))
	for i, f := range features {
		w := 1 / float64(len(features))
		if total > 0 {
			w = math.Abs(model.Coefficients[i]) / total
		}
		out[i] = Importance{Feature: f, Weight: w}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Feature < out[j].Feature
	})
	return out, nil
}
