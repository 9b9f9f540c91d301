package explore

import (
	"fjacquet/sales-insights/internal/models"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Summary is the headline view over both datasets.
type Summary struct {
	TotalRevenue            decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
	Transactions            int             `json:"transactions" yaml:"transactions"`
	AverageTransactionValue decimal.Decimal `json:"average_transaction_value" yaml:"average_transaction_value"`
	Customers               int             `json:"customers" yaml:"customers"`
	AverageSatisfaction     float64         `json:"average_satisfaction" yaml:"average_satisfaction"`
}

// Summarize computes totals and averages. Averages over empty inputs are zero.
func Summarize(sales []models.Sale, customers []models.Customer) Summary {
	summary := Summary{Transactions: len(sales), Customers: len(customers)}

	for _, s := range sales {
		summary.TotalRevenue = summary.TotalRevenue.Add(s.Revenue)
	}
	if len(sales) > 0 {
		summary.AverageTransactionValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	if len(customers) > 0 {
		scores := make([]float64, len(customers))
		for i, c := range customers {
			scores[i] = c.SatisfactionScore
		}
		summary.AverageSatisfaction = stat.Mean(scores, nil)
	}
	return summary
}
