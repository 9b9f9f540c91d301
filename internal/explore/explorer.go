package explore

import (
	"time"

	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
)

// DefaultTopProducts is the number of products listed when none is configured.
const DefaultTopProducts = 5

// Report collects every exploration section.
type Report struct {
	Categories   []CategorySummary `json:"sales_by_category" yaml:"sales_by_category"`
	Regions      []RegionSummary   `json:"sales_by_region" yaml:"sales_by_region"`
	TopProducts  []ProductSummary  `json:"top_products" yaml:"top_products"`
	Genders      []GenderSummary   `json:"customers_by_gender" yaml:"customers_by_gender"`
	AgeGroups    []AgeGroupSummary `json:"customers_by_age_group" yaml:"customers_by_age_group"`
	Correlations CorrelationMatrix `json:"correlations" yaml:"correlations"`
	DailyRevenue []DailyRevenue    `json:"daily_revenue" yaml:"daily_revenue"`
	Summary      Summary           `json:"summary" yaml:"summary"`
}

// Explorer runs the exploration sections over cleaned data.
type Explorer struct {
	logger      logging.Logger
	topProducts int
}

// NewExplorer creates an Explorer listing topProducts products (default 5).
func NewExplorer(logger logging.Logger, topProducts int) *Explorer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if topProducts <= 0 {
		topProducts = DefaultTopProducts
	}
	return &Explorer{logger: logger, topProducts: topProducts}
}

// TopN returns how many products Run lists.
func (e *Explorer) TopN() int {
	return e.topProducts
}

// Run computes the full exploration report.
func (e *Explorer) Run(sales []models.Sale, customers []models.Customer) *Report {
	start := time.Now()
	log := e.logger.WithField(logging.FieldStage, "explore")
	log.Info("Starting exploratory analysis",
		logging.F("sales_rows", len(sales)),
		logging.F("customer_rows", len(customers)))

	report := &Report{
		Categories:   SalesByCategory(sales),
		Regions:      SalesByRegion(sales),
		TopProducts:  TopProducts(sales, e.topProducts),
		Genders:      CustomersByGender(customers),
		AgeGroups:    CustomersByAgeGroup(customers),
		Correlations: CustomerCorrelations(customers),
		DailyRevenue: DailyRevenueSeries(sales),
		Summary:      Summarize(sales, customers),
	}

	log.Info("Exploratory analysis completed",
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report
}
