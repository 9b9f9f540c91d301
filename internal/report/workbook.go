package report

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/fileutils"
	"fjacquet/sales-insights/internal/logging"
)

// Workbook sheet names, in order.
const (
	SheetSummary      = "Summary"
	SheetCategories   = "By Category"
	SheetRegions      = "By Region"
	SheetTopProducts  = "Top Products"
	SheetGenders      = "By Gender"
	SheetAgeGroups    = "By Age Group"
	SheetCorrelations = "Correlations"
	SheetDailyRevenue = "Daily Revenue"
)

type sheet struct {
	name string
	rows [][]any
}

// WriteWorkbook writes every exploration section to its own sheet of an xlsx
// workbook at path.
func (g *ReportGenerator) WriteWorkbook(r *explore.Report, path string) (err error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range workbookSheets(r) {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}
		for j, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, j+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("failed to write sheet %q: %w", s.name, err)
			}
		}
		if err := f.SetRowStyle(s.name, 1, 1, header); err != nil {
			return err
		}
		if err := f.SetColWidth(s.name, "A", "A", 22); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		g.logger.WithError(err).Error("Failed to save workbook",
			logging.Field{Key: logging.FieldOutputFile, Value: path})
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	g.logger.Info("Workbook written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(f.GetSheetList())})
	return nil
}

func workbookSheets(r *explore.Report) []sheet {
	summary := sheet{name: SheetSummary, rows: [][]any{
		{"Metric", "Value"},
		{"Total revenue", r.Summary.TotalRevenue.InexactFloat64()},
		{"Transactions", r.Summary.Transactions},
		{"Average transaction value", r.Summary.AverageTransactionValue.InexactFloat64()},
		{"Customers", r.Summary.Customers},
		{"Average satisfaction", r.Summary.AverageSatisfaction},
	}}

	categories := sheet{name: SheetCategories, rows: [][]any{{"Category", "Quantity", "Revenue", "Unique products"}}}
	for _, c := range r.Categories {
		categories.rows = append(categories.rows, []any{c.Category, c.TotalQuantity, c.TotalRevenue.InexactFloat64(), c.UniqueProducts})
	}

	regions := sheet{name: SheetRegions, rows: [][]any{{"Region", "Quantity", "Revenue", "Transactions"}}}
	for _, rg := range r.Regions {
		regions.rows = append(regions.rows, []any{rg.Region, rg.TotalQuantity, rg.TotalRevenue.InexactFloat64(), rg.Transactions})
	}

	products := sheet{name: SheetTopProducts, rows: [][]any{{"Product", "Quantity", "Revenue"}}}
	for _, p := range r.TopProducts {
		products.rows = append(products.rows, []any{p.Product, p.TotalQuantity, p.TotalRevenue.InexactFloat64()})
	}

	genders := sheet{name: SheetGenders, rows: [][]any{{"Gender", "Customers", "Mean age", "Mean income", "Mean purchase frequency", "Mean satisfaction"}}}
	for _, gs := range r.Genders {
		genders.rows = append(genders.rows, []any{gs.Gender, gs.Customers, gs.MeanAge, gs.MeanIncome, gs.MeanPurchaseFrequency, gs.MeanSatisfaction})
	}

	ages := sheet{name: SheetAgeGroups, rows: [][]any{{"Age group", "Customers", "Mean income", "Mean purchase frequency", "Mean satisfaction"}}}
	for _, a := range r.AgeGroups {
		ages.rows = append(ages.rows, []any{string(a.AgeGroup), a.Customers, a.MeanIncome, a.MeanPurchaseFrequency, a.MeanSatisfaction})
	}

	corr := sheet{name: SheetCorrelations, rows: [][]any{append([]any{""}, stringsToAny(r.Correlations.Columns)...)}}
	for i, name := range r.Correlations.Columns {
		row := []any{name}
		for _, v := range r.Correlations.Values[i] {
			if math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, v)
		}
		corr.rows = append(corr.rows, row)
	}

	daily := sheet{name: SheetDailyRevenue, rows: [][]any{{"Date", "Revenue"}}}
	for _, d := range r.DailyRevenue {
		daily.rows = append(daily.rows, []any{d.Date.String(), d.Revenue.InexactFloat64()})
	}

	return []sheet{summary, categories, regions, products, genders, ages, corr, daily}
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
