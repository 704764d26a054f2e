package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldRunID    = "run_id"
	FieldYear     = "year"
	FieldKey      = "key"
	FieldRawLine  = "raw_line"
	FieldLineNo   = "line_no"
	FieldFields   = "fields"
	FieldCacheKey = "cache_key"
)
