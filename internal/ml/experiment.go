package ml

import (
	"fmt"
	"time"

	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
)

// Defaults for the train/test split.
const (
	DefaultTestSize = 0.3
	DefaultSeed     = 42
)

// Profile is a hypothetical customer to score with a trained model.
type Profile struct {
	Age               int
	Gender            string
	Income            float64
	MembershipDays    int
	SatisfactionScore float64
}

// ExampleProfile is the customer scored at the end of the predict stage.
func ExampleProfile() Profile {
	return Profile{Age: 35, Gender: "M", Income: 80000, MembershipDays: 500, SatisfactionScore: 4.5}
}

// ModelResult holds one model's test-set predictions and scores.
type ModelResult struct {
	Name        string    `json:"name" yaml:"name"`
	Metrics     Metrics   `json:"metrics" yaml:"metrics"`
	Predictions []float64 `json:"-" yaml:"-"`
}

// Result is the outcome of an Experiment run.
type Result struct {
	Features   []string      `json:"features" yaml:"features"`
	TrainSize  int           `json:"train_size" yaml:"train_size"`
	TestSize   int           `json:"test_size" yaml:"test_size"`
	Actual     []float64     `json:"-" yaml:"-"`
	Models     []ModelResult `json:"models" yaml:"models"`
	Importance []Importance  `json:"feature_importance" yaml:"feature_importance"`

	encoder *LabelEncoder
	scaler  *StandardScaler
	model   *LinearRegression
}

// Experiment trains the multivariate model and a single-feature baseline on
// the same split and compares them.
type Experiment struct {
	logger   logging.Logger
	testSize float64
	seed     uint64
}

// NewExperiment creates an Experiment. A test size outside (0,1) falls back
// to DefaultTestSize.
func NewExperiment(logger logging.Logger, testSize float64, seed uint64) *Experiment {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if testSize <= 0 || testSize >= 1 {
		testSize = DefaultTestSize
	}
	return &Experiment{logger: logger, testSize: testSize, seed: seed}
}

// Run prepares features, splits, standardizes on the train set, fits both
// models and scores them on the test set.
func (e *Experiment) Run(customers []models.Customer, now time.Time) (*Result, error) {
	log := e.logger.WithField(logging.FieldStage, "predict")

	ds, encoder := PrepareFeatures(customers, now)
	train, test, err := TrainTestSplit(ds, e.testSize, e.seed)
	if err != nil {
		return nil, err
	}
	log.Info("Split dataset",
		logging.Field{Key: "train_rows", Value: train.Len()},
		logging.Field{Key: "test_rows", Value: test.Len()})

	scaler := FitStandardScaler(train.X)
	trainX, err := scaler.Transform(train.X)
	if err != nil {
		return nil, err
	}
	testX, err := scaler.Transform(test.X)
	if err != nil {
		return nil, err
	}

	linear := NewLinearRegression()
	baseline := NewSingleFeatureRegression(FeatureIncome, indexOf(ds.Features, FeatureIncome))
	result := &Result{
		Features:  ds.Features,
		TrainSize: train.Len(),
		TestSize:  test.Len(),
		Actual:    test.Y,
		encoder:   encoder,
		scaler:    scaler,
		model:     linear,
	}

	for _, m := range []Regressor{linear, baseline} {
		if err := m.Fit(trainX, train.Y); err != nil {
			return nil, fmt.Errorf("fit %s: %w", m.Name(), err)
		}
		pred, err := m.Predict(testX)
		if err != nil {
			return nil, fmt.Errorf("predict %s: %w", m.Name(), err)
		}
		metrics, err := Evaluate(test.Y, pred)
		if err != nil {
			return nil, err
		}
		log.WithFields(
			logging.Field{Key: logging.FieldModel, Value: m.Name()},
			logging.Field{Key: "rmse", Value: metrics.RMSE},
			logging.Field{Key: "r2", Value: metrics.R2},
		).Info("Evaluated model")
		result.Models = append(result.Models, ModelResult{Name: m.Name(), Metrics: metrics, Predictions: pred})
	}

	result.Importance, err = FeatureImportance(linear, ds.Features)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PredictOne scores a single profile with the multivariate model.
func (r *Result) PredictOne(p Profile) (float64, error) {
	if r.model == nil {
		return 0, errNotFitted
	}
	code, err := r.encoder.Transform(normalizeGender(p.Gender))
	if err != nil {
		return 0, err
	}
	row, err := r.scaler.TransformRow([]float64{
		float64(p.Age), float64(code), p.Income, float64(p.MembershipDays), p.SatisfactionScore,
	})
	if err != nil {
		return 0, err
	}
	pred, err := r.model.Predict([][]float64{row})
	if err != nil {
		return 0, err
	}
	return pred[0], nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
