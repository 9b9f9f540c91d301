package explore

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"fjacquet/sales-insights/internal/models"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GenderSummary holds per-gender customer means.
type GenderSummary struct {
	Gender                string  `json:"gender" yaml:"gender"`
	Customers             int     `json:"customers" yaml:"customers"`
	MeanAge               float64 `json:"mean_age" yaml:"mean_age"`
	MeanIncome            float64 `json:"mean_income" yaml:"mean_income"`
	MeanPurchaseFrequency float64 `json:"mean_purchase_frequency" yaml:"mean_purchase_frequency"`
	MeanSatisfaction      float64 `json:"mean_satisfaction" yaml:"mean_satisfaction"`
}

// AgeGroupSummary holds per-age-group customer means.
type AgeGroupSummary struct {
	AgeGroup              models.AgeGroup `json:"age_group" yaml:"age_group"`
	Customers             int             `json:"customers" yaml:"customers"`
	MeanIncome            float64         `json:"mean_income" yaml:"mean_income"`
	MeanPurchaseFrequency float64         `json:"mean_purchase_frequency" yaml:"mean_purchase_frequency"`
	MeanSatisfaction      float64         `json:"mean_satisfaction" yaml:"mean_satisfaction"`
}

// CorrelationColumns are the customer attributes correlated by CustomerCorrelations.
var CorrelationColumns = []string{"age", "income", "purchase_frequency", "satisfaction_score"}

// CorrelationMatrix is a labelled symmetric matrix of Pearson coefficients.
// Undefined coefficients (constant columns, fewer than two rows) are NaN.
type CorrelationMatrix struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Values  [][]float64 `json:"values" yaml:"values"`
}

// At returns the coefficient between the named columns.
func (m CorrelationMatrix) At(a, b string) float64 {
	i, j := indexOf(m.Columns, a), indexOf(m.Columns, b)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

// MarshalJSON encodes NaN coefficients as null, which encoding/json cannot do itself.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	cols, err := json.Marshal(m.Columns)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"columns":`)
	buf.Write(cols)
	buf.WriteString(`,"values":[`)
	for i, row := range m.Values {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		for j, v := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				buf.WriteString("null")
				continue
			}
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		buf.WriteByte(']')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

type customerColumns struct {
	age, income, frequency, satisfaction []float64
}

func (c *customerColumns) add(cust models.Customer) {
	c.age = append(c.age, float64(cust.Age))
	c.income = append(c.income, cust.Income)
	c.frequency = append(c.frequency, float64(cust.PurchaseFrequency))
	c.satisfaction = append(c.satisfaction, cust.SatisfactionScore)
}

// CustomersByGender returns mean age, income, purchase frequency and
// satisfaction per gender, sorted by gender.
func CustomersByGender(customers []models.Customer) []GenderSummary {
	groups := map[string]*customerColumns{}
	for _, c := range customers {
		if groups[c.Gender] == nil {
			groups[c.Gender] = &customerColumns{}
		}
		groups[c.Gender].add(c)
	}

	out := make([]GenderSummary, 0, len(groups))
	for gender, cols := range groups {
		out = append(out, GenderSummary{
			Gender:                gender,
			Customers:             len(cols.age),
			MeanAge:               stat.Mean(cols.age, nil),
			MeanIncome:            stat.Mean(cols.income, nil),
			MeanPurchaseFrequency: stat.Mean(cols.frequency, nil),
			MeanSatisfaction:      stat.Mean(cols.satisfaction, nil),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Gender < out[b].Gender })
	return out
}

// CustomersByAgeGroup returns mean income, purchase frequency and satisfaction
// per age group in bucket order. Groups without customers are omitted, as are
// customers whose age falls outside every bucket.
func CustomersByAgeGroup(customers []models.Customer) []AgeGroupSummary {
	groups := map[models.AgeGroup]*customerColumns{}
	for _, c := range customers {
		g, ok := models.AgeGroupOf(c.Age)
		if !ok {
			continue
		}
		if groups[g] == nil {
			groups[g] = &customerColumns{}
		}
		groups[g].add(c)
	}

	var out []AgeGroupSummary
	for _, g := range models.AgeGroups {
		cols, ok := groups[g]
		if !ok {
			continue
		}
		out = append(out, AgeGroupSummary{
			AgeGroup:              g,
			Customers:             len(cols.income),
			MeanIncome:            stat.Mean(cols.income, nil),
			MeanPurchaseFrequency: stat.Mean(cols.frequency, nil),
			MeanSatisfaction:      stat.Mean(cols.satisfaction, nil),
		})
	}
	return out
}

// CustomerCorrelations computes the Pearson correlation matrix of age, income,
// purchase_frequency and satisfaction_score.
func CustomerCorrelations(customers []models.Customer) CorrelationMatrix {
	k := len(CorrelationColumns)
	values := make([][]float64, k)
	for i := range values {
		values[i] = make([]float64, k)
	}
	result := CorrelationMatrix{Columns: append([]string(nil), CorrelationColumns...), Values: values}

	n := len(customers)
	if n < 2 {
		for i := range values {
			for j := range values[i] {
				values[i][j] = math.NaN()
			}
		}
		return result
	}

	data := mat.NewDense(n, k, nil)
	for r, c := range customers {
		data.Set(r, 0, float64(c.Age))
		data.Set(r, 1, c.Income)
		data.Set(r, 2, float64(c.PurchaseFrequency))
		data.Set(r, 3, c.SatisfactionScore)
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, data, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			values[i][j] = corr.At(i, j)
		}
	}
	return result
}
