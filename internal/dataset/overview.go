package dataset

import (
	"fmt"

	"fjacquet/sales-insights/internal/fileutils"
	"fjacquet/sales-insights/internal/logging"

	"github.com/go-gota/gota/dataframe"
)

// HeadRows is the number of rows shown in an overview preview.
const HeadRows = 5

// missingMarkers are the cells treated as missing when profiling a file.
var missingMarkers = []string{"", "NA", "NaN", "<nil>", "null"}

// Column describes one column of a profiled file.
type Column struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Missing int    `json:"missing" yaml:"missing"`
}

// Overview is a first look at a raw dataset: its shape, column types, a
// preview of the first rows, descriptive statistics and missing values.
type Overview struct {
	Path     string   `json:"path" yaml:"path"`
	Rows     int      `json:"rows" yaml:"rows"`
	Columns  []Column `json:"columns" yaml:"columns"`
	Head     string   `json:"head" yaml:"head"`
	Describe string   `json:"describe" yaml:"describe"`
}

// TotalMissing sums missing cells over all columns.
func (o *Overview) TotalMissing() int {
	total := 0
	for _, c := range o.Columns {
		total += c.Missing
	}
	return total
}

// Overview profiles the file at path with a gota dataframe.
func (s *Store) Overview(path string) (*Overview, error) {
	log := s.logger.WithField(logging.FieldFile, path)

	file, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	df := dataframe.ReadCSV(file,
		dataframe.WithDelimiter(s.delimiter),
		dataframe.NaNValues(missingMarkers),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		log.WithError(df.Err).Error("Failed to load dataframe")
		return nil, fmt.Errorf("error loading dataframe from %s: %w", path, df.Err)
	}

	overview := buildOverview(path, df)
	log.Info("Profiled dataset",
		logging.F(logging.FieldRows, overview.Rows),
		logging.F(logging.FieldColumns, len(overview.Columns)))
	return overview, nil
}

func buildOverview(path string, df dataframe.DataFrame) *Overview {
	names := df.Names()
	types := df.Types()

	columns := make([]Column, len(names))
	for i, name := range names {
		missing := 0
		for _, isNaN := range df.Col(name).IsNaN() {
			if isNaN {
				missing++
			}
		}
		columns[i] = Column{Name: name, Type: string(types[i]), Missing: missing}
	}

	headCount := HeadRows
	if df.Nrow() < headCount {
		headCount = df.Nrow()
	}
	idx := make([]int, headCount)
	for i := range idx {
		idx[i] = i
	}

	head := ""
	if headCount > 0 {
		head = df.Subset(idx).String()
	}

	return &Overview{
		Path:     path,
		Rows:     df.Nrow(),
		Columns:  columns,
		Head:     head,
		Describe: df.Describe().String(),
	}
}
