package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrSource = "source"
	AttrEntity = "entity"
	AttrJob    = "job"
)
