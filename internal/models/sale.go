// Package models provides the data structures used throughout the application.
package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SaleColumns are the columns every sales file must carry.
var SaleColumns = []string{"date", "product", "category", "region", "quantity", "price", "revenue"}

// CleanedSaleColumns are the columns of a cleaned sales file.
var CleanedSaleColumns = append(append([]string(nil), SaleColumns...), "year", "month", "day_of_week")

// Sale is one sales transaction. Year, Month and DayOfWeek are derived from
// Date during cleaning and are empty in raw files.
type Sale struct {
	Date      Date            `csv:"date" json:"date" yaml:"date"`
	Product   string          `csv:"product" json:"product" yaml:"product" validate:"required"`
	Category  string          `csv:"category" json:"category" yaml:"category" validate:"required"`
	Region    string          `csv:"region" json:"region" yaml:"region" validate:"required"`
	Quantity  int             `csv:"quantity" json:"quantity" yaml:"quantity" validate:"gte=0"`
	Price     decimal.Decimal `csv:"price" json:"price" yaml:"price"`
	Revenue   decimal.Decimal `csv:"revenue" json:"revenue" yaml:"revenue"`
	Year      int             `csv:"year" json:"year,omitempty" yaml:"year,omitempty"`
	Month     int             `csv:"month" json:"month,omitempty" yaml:"month,omitempty"`
	DayOfWeek string          `csv:"day_of_week" json:"day_of_week,omitempty" yaml:"day_of_week,omitempty"`
}

// ExpectedRevenue returns Quantity × Price.
func (s Sale) ExpectedRevenue() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// RevenueFloat returns Revenue as a float64 for numerical routines.
func (s Sale) RevenueFloat() float64 {
	f, _ := s.Revenue.Float64()
	return f
}

// Key identifies a row by its source columns, so two rows with the same key
// are duplicates. Derived columns are excluded because they follow from Date.
func (s Sale) Key() string {
	return strings.Join([]string{
		s.Date.String(),
		s.Product,
		s.Category,
		s.Region,
		strconv.Itoa(s.Quantity),
		s.Price.String(),
		s.Revenue.String(),
	}, "\x1f")
}
