package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldUserID     = "user_id"
	FieldRequestID  = "request_id"
	FieldBlock      = "block_index"
	FieldReason     = "reason"
	FieldCategory   = "category"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldRejected   = "rejected"
	FieldMonths     = "months"
	FieldExtractor  = "extractor"
	FieldModel      = "model"
	FieldOutputFile = "output_file"
)
