// Package explore aggregates cleaned sales and customer records into the
// summaries printed, plotted and exported by the explore stage.
package explore

import (
	"sort"

	"fjacquet/sales-insights/internal/models"

	"github.com/shopspring/decimal"
)

// CategorySummary aggregates sales of one category.
type CategorySummary struct {
	Category       string          `json:"category" yaml:"category"`
	TotalQuantity  int             `json:"total_quantity" yaml:"total_quantity"`
	TotalRevenue   decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
	UniqueProducts int             `json:"unique_products" yaml:"unique_products"`
}

// RegionSummary aggregates sales of one region.
type RegionSummary struct {
	Region        string          `json:"region" yaml:"region"`
	TotalQuantity int             `json:"total_quantity" yaml:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
	Transactions  int             `json:"transactions" yaml:"transactions"`
}

// ProductSummary aggregates sales of one product.
type ProductSummary struct {
	Product       string          `json:"product" yaml:"product"`
	TotalQuantity int             `json:"total_quantity" yaml:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" yaml:"total_revenue"`
}

// DailyRevenue is the revenue booked on one date.
type DailyRevenue struct {
	Date    models.Date     `json:"date" yaml:"date"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
}

// byRevenueDesc orders by revenue descending with name as tie-break, so
// output is deterministic.
func byRevenueDesc(revA, revB decimal.Decimal, nameA, nameB string) bool {
	if c := revA.Cmp(revB); c != 0 {
		return c > 0
	}
	return nameA < nameB
}

// SalesByCategory returns quantity, revenue and distinct products per
// category, sorted by revenue descending.
func SalesByCategory(sales []models.Sale) []CategorySummary {
	index := map[string]int{}
	products := map[string]map[string]struct{}{}
	var out []CategorySummary

	for _, s := range sales {
		i, ok := index[s.Category]
		if !ok {
			i = len(out)
			index[s.Category] = i
			out = append(out, CategorySummary{Category: s.Category})
			products[s.Category] = map[string]struct{}{}
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue = out[i].TotalRevenue.Add(s.Revenue)
		products[s.Category][s.Product] = struct{}{}
	}
	for i := range out {
		out[i].UniqueProducts = len(products[out[i].Category])
	}

	sort.SliceStable(out, func(a, b int) bool {
		return byRevenueDesc(out[a].TotalRevenue, out[b].TotalRevenue, out[a].Category, out[b].Category)
	})
	return out
}

// SalesByRegion returns quantity, revenue and transaction count per region,
// sorted by revenue descending.
func SalesByRegion(sales []models.Sale) []RegionSummary {
	index := map[string]int{}
	var out []RegionSummary

	for _, s := range sales {
		i, ok := index[s.Region]
		if !ok {
			i = len(out)
			index[s.Region] = i
			out = append(out, RegionSummary{Region: s.Region})
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue = out[i].TotalRevenue.Add(s.Revenue)
		out[i].Transactions++
	}

	sort.SliceStable(out, func(a, b int) bool {
		return byRevenueDesc(out[a].TotalRevenue, out[b].TotalRevenue, out[a].Region, out[b].Region)
	})
	return out
}

// TopProducts returns the n products with the highest revenue.
// n <= 0 returns every product.
func TopProducts(sales []models.Sale, n int) []ProductSummary {
	index := map[string]int{}
	var out []ProductSummary

	for _, s := range sales {
		i, ok := index[s.Product]
		if !ok {
			i = len(out)
			index[s.Product] = i
			out = append(out, ProductSummary{Product: s.Product})
		}
		out[i].TotalQuantity += s.Quantity
		out[i].TotalRevenue = out[i].TotalRevenue.Add(s.Revenue)
	}

	sort.SliceStable(out, func(a, b int) bool {
		return byRevenueDesc(out[a].TotalRevenue, out[b].TotalRevenue, out[a].Product, out[b].Product)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// DailyRevenueSeries returns revenue per date in ascending date order.
// Rows without a date are skipped.
func DailyRevenueSeries(sales []models.Sale) []DailyRevenue {
	index := map[string]int{}
	var out []DailyRevenue
	for _, s := range sales {
		if s.Date.IsZero() {
			continue
		}
		key := s.Date.String()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DailyRevenue{Date: s.Date})
		}
		out[i].Revenue = out[i].Revenue.Add(s.Revenue)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date.Time) })
	return out
}
