// Package ml is a small supervised-learning example: it predicts a customer's
// purchase frequency from their profile with gonum least squares.
package ml

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fjacquet/sales-insights/internal/dateutils"
	"fjacquet/sales-insights/internal/models"
)

// Feature names in column order.
const (
	FeatureAge               = "age"
	FeatureGender            = "gender_encoded"
	FeatureIncome            = "income"
	FeatureMembershipDays    = "membership_days"
	FeatureSatisfactionScore = "satisfaction_score"
	Target                   = "purchase_frequency"
)

// FeatureNames lists the model inputs in column order.
var FeatureNames = []string{FeatureAge, FeatureGender, FeatureIncome, FeatureMembershipDays, FeatureSatisfactionScore}

// LabelEncoder maps each distinct class to its index in sorted order.
type LabelEncoder struct {
	Classes []string
	index   map[string]int
}

// FitLabelEncoder learns the sorted set of classes in values.
func FitLabelEncoder(values []string) *LabelEncoder {
	set := map[string]struct{}{}
	for _, v := range values {
		set[v] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for v := range set {
		classes = append(classes, v)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{Classes: classes, index: index}
}

// Transform returns the code of value, or an error for an unseen class.
func (e *LabelEncoder) Transform(value string) (int, error) {
	i, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("unknown class %q (known: %s)", value, strings.Join(e.Classes, ", "))
	}
	return i, nil
}

// Dataset is a feature matrix with its target column.
type Dataset struct {
	Features []string
	X        [][]float64
	Y        []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Subset returns the rows at idx.
func (d *Dataset) Subset(idx []int) *Dataset {
	out := &Dataset{Features: d.Features, X: make([][]float64, len(idx)), Y: make([]float64, len(idx))}
	for i, j := range idx {
		out.X[i] = d.X[j]
		out.Y[i] = d.Y[j]
	}
	return out
}

// Column returns feature column j.
func (d *Dataset) Column(j int) []float64 {
	col := make([]float64, len(d.X))
	for i, row := range d.X {
		col[i] = row[j]
	}
	return col
}

// PrepareFeatures builds the feature matrix from customers. Gender is trimmed,
// uppercased and label encoded; membership_days is recomputed against now and
// clamped at zero. The target is purchase_frequency.
func PrepareFeatures(customers []models.Customer, now time.Time) (*Dataset, *LabelEncoder) {
	genders := make([]string, len(customers))
	for i, c := range customers {
		genders[i] = normalizeGender(c.Gender)
	}
	encoder := FitLabelEncoder(genders)

	ds := &Dataset{
		Features: append([]string(nil), FeatureNames...),
		X:        make([][]float64, len(customers)),
		Y:        make([]float64, len(customers)),
	}
	for i, c := range customers {
		code, _ := encoder.Transform(genders[i])
		days := dateutils.DaysBetween(c.MemberSince.Time, now)
		if days < 0 {
			days = 0
		}
		ds.X[i] = []float64{float64(c.Age), float64(code), c.Income, float64(days), c.SatisfactionScore}
		ds.Y[i] = float64(c.PurchaseFrequency)
	}
	return ds, encoder
}

func normalizeGender(g string) string {
	return strings.ToUpper(strings.TrimSpace(g))
}
