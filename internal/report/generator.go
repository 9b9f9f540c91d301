// Package report renders analysis results as json, yaml or xlsx files and as
// console tables.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fjacquet/sales-insights/internal/fileutils"
	"fjacquet/sales-insights/internal/logging"
)

// Supported report formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// Envelope wraps a stage report with run metadata.
type Envelope struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Stage       string    `json:"stage" yaml:"stage"`
	Report      any       `json:"report" yaml:"report"`
}

// ReportGenerator serializes reports to files.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// NewEnvelope stamps report with a fresh run id and the generation time.
func (g *ReportGenerator) NewEnvelope(stage string, report any, now time.Time) Envelope {
	return Envelope{
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC(),
		Stage:       stage,
		Report:      report,
	}
}

// GenerateReport serializes report as json (indented) or yaml.
func (g *ReportGenerator) GenerateReport(report any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML:
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(report any) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(report any) ([]byte, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

// WriteReport serializes report in format and writes it to path.
func (g *ReportGenerator) WriteReport(report any, format, path string) error {
	data, err := g.GenerateReport(report, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	g.logger.Info("Report written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: "format", Value: format})
	return nil
}

// ReportPath returns dir/name.<format>.
func ReportPath(dir, name, format string) string {
	return filepath.Join(dir, name+"."+strings.ToLower(format))
}
