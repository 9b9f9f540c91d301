package stats

import (
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
)

// Options configure an Analyzer.
type Options struct {
	Alpha      float64
	Confidence float64
	Categories []string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{Alpha: 0.05, Confidence: 0.95, Categories: []string{"Electronics", "Furniture", "Supplies"}}
}

// NamedDescriptive labels a Descriptive with its column.
type NamedDescriptive struct {
	Column string `json:"column" yaml:"column"`
	Descriptive `yaml:",inline"`
}

// NamedInterval labels a ConfidenceInterval with its column.
type NamedInterval struct {
	Column             string `json:"column" yaml:"column"`
	ConfidenceInterval `yaml:",inline"`
}

// Skipped records an analysis that could not run and why.
type Skipped struct {
	Analysis string `json:"analysis" yaml:"analysis"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Report is the outcome of a full stats stage run. Sections that could not be
// computed are nil and listed in Skipped.
type Report struct {
	Alpha               float64             `json:"alpha" yaml:"alpha"`
	Descriptives        []NamedDescriptive  `json:"descriptives" yaml:"descriptives"`
	ConfidenceIntervals []NamedInterval     `json:"confidence_intervals" yaml:"confidence_intervals"`
	CategoryANOVA       *ANOVAResult        `json:"category_anova,omitempty" yaml:"category_anova,omitempty"`
	GenderTTest         *TTestResult        `json:"gender_ttest,omitempty" yaml:"gender_ttest,omitempty"`
	Regression          *RegressionResult   `json:"regression,omitempty" yaml:"regression,omitempty"`
	Correlations        []CorrelationResult `json:"correlations" yaml:"correlations"`
	Skipped             []Skipped           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Analyzer runs the statistical analyses over cleaned data.
type Analyzer struct {
	logger logging.Logger
	opts   Options
}

// NewAnalyzer creates an Analyzer, filling zero options with defaults.
func NewAnalyzer(logger logging.Logger, opts Options) *Analyzer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	def := DefaultOptions()
	if opts.Alpha <= 0 || opts.Alpha >= 1 {
		opts.Alpha = def.Alpha
	}
	if opts.Confidence <= 0 || opts.Confidence >= 1 {
		opts.Confidence = def.Confidence
	}
	if len(opts.Categories) == 0 {
		opts.Categories = def.Categories
	}
	return &Analyzer{logger: logger, opts: opts}
}

// Options returns the effective options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Run computes descriptive statistics and confidence intervals for revenue and
// satisfaction, an ANOVA of revenue across categories, a t-test of
// satisfaction between men and women, a regression of purchase frequency on
// income, and two correlation tests.
func (a *Analyzer) Run(sales []models.Sale, customers []models.Customer) *Report {
	log := a.logger.WithField(logging.FieldStage, "stats")
	report := &Report{Alpha: a.opts.Alpha}

	skip := func(analysis string, err error) {
		log.WithError(err).Warn("Skipping analysis", logging.F(logging.FieldOperation, analysis))
		report.Skipped = append(report.Skipped, Skipped{Analysis: analysis, Reason: err.Error()})
	}

	revenue := make([]float64, len(sales))
	for i, s := range sales {
		revenue[i] = s.RevenueFloat()
	}
	var satisfaction, income, frequency []float64
	for _, c := range customers {
		satisfaction = append(satisfaction, c.SatisfactionScore)
		income = append(income, c.Income)
		frequency = append(frequency, float64(c.PurchaseFrequency))
	}

	for _, col := range []struct {
		name   string
		values []float64
	}{{"revenue", revenue}, {"satisfaction_score", satisfaction}} {
		if d, err := Describe(col.values); err != nil {
			skip("describe "+col.name, err)
		} else {
			report.Descriptives = append(report.Descriptives, NamedDescriptive{Column: col.name, Descriptive: d})
		}
		if ci, err := MeanConfidenceInterval(col.values, a.opts.Confidence); err != nil {
			skip("confidence interval "+col.name, err)
		} else {
			report.ConfidenceIntervals = append(report.ConfidenceIntervals, NamedInterval{Column: col.name, ConfidenceInterval: ci})
		}
	}

	groups := make([]Group, len(a.opts.Categories))
	for i, cat := range a.opts.Categories {
		groups[i].Name = cat
		for _, s := range sales {
			if s.Category == cat {
				groups[i].Values = append(groups[i].Values, s.RevenueFloat())
			}
		}
	}
	if res, err := OneWayANOVA(groups); err != nil {
		skip("anova revenue by category", err)
	} else {
		res.Significant = res.PValue < a.opts.Alpha
		report.CategoryANOVA = &res
	}

	male, female := Group{Name: "M"}, Group{Name: "F"}
	for _, c := range customers {
		switch c.Gender {
		case "M":
			male.Values = append(male.Values, c.SatisfactionScore)
		case "F":
			female.Values = append(female.Values, c.SatisfactionScore)
		}
	}
	if res, err := IndependentTTest(male, female); err != nil {
		skip("t-test satisfaction by gender", err)
	} else {
		res.Significant = res.PValue < a.opts.Alpha
		report.GenderTTest = &res
	}

	if res, err := SimpleLinearRegression("income", income, "purchase_frequency", frequency); err != nil {
		skip("regression purchase_frequency on income", err)
	} else {
		report.Regression = &res
	}

	for _, pair := range []struct {
		xName string
		x     []float64
		yName string
		y     []float64
	}{
		{"income", income, "purchase_frequency", frequency},
		{"purchase_frequency", frequency, "satisfaction_score", satisfaction},
	} {
		res, err := PearsonTest(pair.xName, pair.x, pair.yName, pair.y)
		if err != nil {
			skip("correlation "+pair.xName+" vs "+pair.yName, err)
			continue
		}
		res.Significant = res.PValue < a.opts.Alpha
		report.Correlations = append(report.Correlations, res)
	}

	log.Info("Statistical analysis completed",
		logging.F("skipped", len(report.Skipped)))
	return report
}
