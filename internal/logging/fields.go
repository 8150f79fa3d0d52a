package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldSource     = "source"
	FieldJob        = "job"
	FieldRunID      = "run_id"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldAttempt    = "attempt"
	FieldExternalID = "external_id"
)
