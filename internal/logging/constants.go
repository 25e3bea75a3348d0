package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across commands so runs can be
// filtered by page, office or file.
const (
	FieldFile       = "file_path"
	FieldPage       = "page"
	FieldOffice     = "office"
	FieldShape      = "shape"
	FieldLine       = "line"
	FieldOffset     = "offset"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDocument   = "document"
	FieldURL        = "url"
	FieldRunID      = "run_id"
)
