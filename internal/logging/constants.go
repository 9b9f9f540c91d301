package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the analysis stages,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldDataset    = "dataset"
	FieldStage      = "stage"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldModel      = "model"
	FieldRunID      = "run_id"
)
