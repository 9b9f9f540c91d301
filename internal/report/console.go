package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"fjacquet/sales-insights/internal/cleaning"
	"fjacquet/sales-insights/internal/dataset"
	"fjacquet/sales-insights/internal/explore"
	"fjacquet/sales-insights/internal/ml"
	"fjacquet/sales-insights/internal/stats"
)

// WriteTable writes headers and rows as an aligned, tab-separated table.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Section writes a titled banner.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", strings.ToUpper(title))
}

func fmtFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// PrintOverview writes the load stage profile of one dataset.
func PrintOverview(w io.Writer, o *dataset.Overview) error {
	Section(w, "Dataset "+o.Path)
	fmt.Fprintf(w, "Shape: %d rows x %d columns\n\n", o.Rows, len(o.Columns))
	rows := make([][]string, len(o.Columns))
	for i, c := range o.Columns {
		rows[i] = []string{c.Name, c.Type, strconv.Itoa(c.Missing)}
	}
	if err := WriteTable(w, []string{"Column", "Type", "Missing"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFirst rows:\n%s\n\nDescriptive statistics:\n%s\n", o.Head, o.Describe)
	fmt.Fprintf(w, "Total missing values: %d\n", o.TotalMissing())
	return nil
}

// PrintCleaning writes the clean stage counters.
func PrintCleaning(w io.Writer, sales cleaning.SalesReport, customers cleaning.CustomersReport) error {
	Section(w, "Data cleaning")
	return WriteTable(w, []string{"Check", "Sales", "Customers"}, [][]string{
		{"Input rows", strconv.Itoa(sales.InputRows), strconv.Itoa(customers.InputRows)},
		{"Duplicates removed", strconv.Itoa(sales.DuplicatesRemoved), strconv.Itoa(customers.DuplicatesRemoved)},
		{"Missing dates", strconv.Itoa(sales.MissingDates), "-"},
		{"Revenue mismatches", strconv.Itoa(sales.RevenueMismatches), "-"},
		{"Future memberships", "-", strconv.Itoa(customers.FutureMemberships)},
		{"Age outliers", "-", strconv.Itoa(customers.AgeOutliers)},
		{"Invalid records", strconv.Itoa(sales.InvalidRecords), strconv.Itoa(customers.InvalidRecords)},
		{"Output rows", strconv.Itoa(sales.OutputRows), strconv.Itoa(customers.OutputRows)},
	})
}

// PrintExploration writes every exploration section.
func PrintExploration(w io.Writer, r *explore.Report) error {
	Section(w, "Sales by category")
	rows := make([][]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.TotalQuantity), c.TotalRevenue.StringFixed(2), strconv.Itoa(c.UniqueProducts)})
	}
	if err := WriteTable(w, []string{"Category", "Quantity", "Revenue", "Products"}, rows); err != nil {
		return err
	}

	Section(w, "Sales by region")
	rows = rows[:0]
	for _, rg := range r.Regions {
		rows = append(rows, []string{rg.Region, strconv.Itoa(rg.TotalQuantity), rg.TotalRevenue.StringFixed(2), strconv.Itoa(rg.Transactions)})
	}
	if err := WriteTable(w, []string{"Region", "Quantity", "Revenue", "Transactions"}, rows); err != nil {
		return err
	}

	Section(w, fmt.Sprintf("Top %d products", len(r.TopProducts)))
	rows = rows[:0]
	for _, p := range r.TopProducts {
		rows = append(rows, []string{p.Product, strconv.Itoa(p.TotalQuantity), p.TotalRevenue.StringFixed(2)})
	}
	if err := WriteTable(w, []string{"Product", "Quantity", "Revenue"}, rows); err != nil {
		return err
	}

	Section(w, "Customers by gender")
	rows = rows[:0]
	for _, g := range r.Genders {
		rows = append(rows, []string{g.Gender, strconv.Itoa(g.Customers), fmtFloat(g.MeanAge, 1), fmtFloat(g.MeanIncome, 2),
			fmtFloat(g.MeanPurchaseFrequency, 2), fmtFloat(g.MeanSatisfaction, 2)})
	}
	if err := WriteTable(w, []string{"Gender", "Customers", "Age", "Income", "Frequency", "Satisfaction"}, rows); err != nil {
		return err
	}

	Section(w, "Customers by age group")
	rows = rows[:0]
	for _, a := range r.AgeGroups {
		rows = append(rows, []string{string(a.AgeGroup), strconv.Itoa(a.Customers), fmtFloat(a.MeanIncome, 2),
			fmtFloat(a.MeanPurchaseFrequency, 2), fmtFloat(a.MeanSatisfaction, 2)})
	}
	if err := WriteTable(w, []string{"Age group", "Customers", "Income", "Frequency", "Satisfaction"}, rows); err != nil {
		return err
	}

	Section(w, "Correlation matrix")
	rows = rows[:0]
	for i, name := range r.Correlations.Columns {
		row := []string{name}
		for _, v := range r.Correlations.Values[i] {
			row = append(row, fmtFloat(v, 3))
		}
		rows = append(rows, row)
	}
	if err := WriteTable(w, append([]string{""}, r.Correlations.Columns...), rows); err != nil {
		return err
	}

	Section(w, "Summary")
	s := r.Summary
	return WriteTable(w, []string{"Metric", "Value"}, [][]string{
		{"Total revenue", s.TotalRevenue.StringFixed(2)},
		{"Transactions", strconv.Itoa(s.Transactions)},
		{"Average transaction value", s.AverageTransactionValue.StringFixed(2)},
		{"Customers", strconv.Itoa(s.Customers)},
		{"Average satisfaction", fmtFloat(s.AverageSatisfaction, 2)},
	})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// PrintStats writes the statistical analysis report.
func PrintStats(w io.Writer, r *stats.Report) error {
	Section(w, "Descriptive statistics")
	var rows [][]string
	for _, d := range r.Descriptives {
		rows = append(rows, []string{d.Column, strconv.Itoa(d.Count), fmtFloat(d.Mean, 2), fmtFloat(d.Median, 2), fmtFloat(d.Mode, 2),
			fmtFloat(d.StdDev, 2), fmtFloat(d.Min, 2), fmtFloat(d.Max, 2), fmtFloat(d.Range, 2)})
	}
	if err := WriteTable(w, []string{"Column", "Count", "Mean", "Median", "Mode", "Std", "Min", "Max", "Range"}, rows); err != nil {
		return err
	}

	Section(w, "Confidence intervals")
	rows = rows[:0]
	for _, ci := range r.ConfidenceIntervals {
		rows = append(rows, []string{ci.Column, fmt.Sprintf("%.0f%%", ci.Level*100), fmtFloat(ci.Mean, 2),
			fmtFloat(ci.MarginOfError, 2), fmt.Sprintf("[%s, %s]", fmtFloat(ci.Lower, 2), fmtFloat(ci.Upper, 2))})
	}
	if err := WriteTable(w, []string{"Column", "Level", "Mean", "Margin", "Interval"}, rows); err != nil {
		return err
	}

	Section(w, fmt.Sprintf("Hypothesis tests (alpha = %.2f)", r.Alpha))
	rows = rows[:0]
	if a := r.CategoryANOVA; a != nil {
		rows = append(rows, []string{"ANOVA revenue by " + strings.Join(a.Groups, "/"),
			fmt.Sprintf("F(%d, %d) = %s", a.DFBetween, a.DFWithin, fmtFloat(a.F, 4)), fmtFloat(a.PValue, 4), yesNo(a.Significant)})
	}
	if t := r.GenderTTest; t != nil {
		rows = append(rows, []string{fmt.Sprintf("t-test satisfaction %s vs %s", t.GroupA, t.GroupB),
			fmt.Sprintf("t(%d) = %s", t.DF, fmtFloat(t.T, 4)), fmtFloat(t.PValue, 4), yesNo(t.Significant)})
	}
	for _, c := range r.Correlations {
		rows = append(rows, []string{fmt.Sprintf("Pearson %s vs %s (%s %s)", c.X, c.Y, c.Strength, c.Direction),
			"r = " + fmtFloat(c.R, 4), fmtFloat(c.PValue, 4), yesNo(c.Significant)})
	}
	if err := WriteTable(w, []string{"Test", "Statistic", "p-value", "Significant"}, rows); err != nil {
		return err
	}

	if reg := r.Regression; reg != nil {
		Section(w, fmt.Sprintf("Regression %s ~ %s", reg.Y, reg.X))
		if err := WriteTable(w, []string{"Slope", "Intercept", "R²", "RMSE", "Strength"}, [][]string{{
			fmtFloat(reg.Slope, 6), fmtFloat(reg.Intercept, 4), fmtFloat(reg.RSquared, 4), fmtFloat(reg.RMSE, 4), reg.Strength,
		}}); err != nil {
			return err
		}
	}

	for _, s := range r.Skipped {
		fmt.Fprintf(w, "Skipped %s: %s\n", s.Analysis, s.Reason)
	}
	return nil
}

// PrintModels writes the model comparison and feature importances.
func PrintModels(w io.Writer, r *ml.Result) error {
	Section(w, "Model performance")
	fmt.Fprintf(w, "Train rows: %d, test rows: %d\n\n", r.TrainSize, r.TestSize)
	rows := make([][]string, 0, len(r.Models))
	for _, m := range r.Models {
		rows = append(rows, []string{m.Name, fmtFloat(m.Metrics.RMSE, 4), fmtFloat(m.Metrics.MAE, 4), fmtFloat(m.Metrics.R2, 4)})
	}
	if err := WriteTable(w, []string{"Model", "RMSE", "MAE", "R²"}, rows); err != nil {
		return err
	}

	Section(w, "Feature importance")
	rows = rows[:0]
	for _, imp := range r.Importance {
		rows = append(rows, []string{imp.Feature, fmtFloat(imp.Weight, 4)})
	}
	return WriteTable(w, []string{"Feature", "Weight"}, rows)
}
