// Package dataset reads and writes the sales and customer CSV files and
// produces the dataframe overview printed by the load stage.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/sales-insights/internal/fileutils"
	"fjacquet/sales-insights/internal/logging"
	"fjacquet/sales-insights/internal/models"
	"fjacquet/sales-insights/internal/parsererror"

	"github.com/gocarina/gocsv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Store loads and saves datasets with a fixed delimiter.
type Store struct {
	logger    logging.Logger
	delimiter rune
}

// NewStore creates a Store. A zero delimiter means comma.
func NewStore(logger logging.Logger, delimiter rune) *Store {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Store{logger: logger, delimiter: delimiter}
}

// Delimiter returns the field separator used by the store.
func (s *Store) Delimiter() rune {
	return s.delimiter
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// The header must contain every column in required, otherwise an
// *parsererror.InvalidFormatError is returned before any row is decoded.
func ReadCSVFile[T any](s *Store, filePath string, required []string) ([]T, error) {
	log := s.logger.WithField(logging.FieldFile, filePath)
	log.Info("Reading CSV file")

	file, err := fileutils.OpenFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	rows, err := decodeCSV[T](data, s.delimiter, filePath, required)
	if err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, err
	}

	log.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

func decodeCSV[T any](data []byte, delimiter rune, source string, required []string) ([]T, error) {
	header, err := newReader(data, delimiter).Read()
	if errors.Is(err, io.EOF) {
		return nil, &parsererror.ValidationError{FilePath: source, Reason: "file is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	if missing := MissingColumns(header, required); len(missing) > 0 {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       source,
			ExpectedFormat: strings.Join(required, string(delimiter)),
			MissingColumns: missing,
			Msg:            "missing required columns",
		}
	}

	var rows []T
	if err := gocsv.UnmarshalCSV(newReader(data, delimiter), &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file %s: %w", source, err)
	}
	return rows, nil
}

func newReader(data []byte, delimiter rune) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.TrimLeadingSpace = true
	return r
}

// MissingColumns returns the entries of required absent from header,
// comparing trimmed, case-insensitive names.
func MissingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}
	var missing []string
	for _, col := range required {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	return missing
}

// WriteCSVFile writes rows to filePath, creating parent directories.
func WriteCSVFile[T any](s *Store, filePath string, rows []T) error {
	if rows == nil {
		return fmt.Errorf("cannot write nil rows to CSV")
	}

	log := s.logger.WithFields(
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(rows)),
	)
	log.Info("Writing CSV file")

	file, err := fileutils.CreateFile(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = s.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote CSV file")
	return nil
}

// LoadSales reads a sales file.
func (s *Store) LoadSales(path string) ([]models.Sale, error) {
	return ReadCSVFile[models.Sale](s, path, models.SaleColumns)
}

// LoadCustomers reads a customer file.
func (s *Store) LoadCustomers(path string) ([]models.Customer, error) {
	return ReadCSVFile[models.Customer](s, path, models.CustomerColumns)
}

// SaveSales writes sales, including the derived date columns.
func (s *Store) SaveSales(path string, sales []models.Sale) error {
	return WriteCSVFile(s, path, sales)
}

// SaveCustomers writes customers, including membership_days.
func (s *Store) SaveCustomers(path string, customers []models.Customer) error {
	return WriteCSVFile(s, path, customers)
}
