package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrJob      = "job"
	AttrOutcome  = "outcome"
	AttrProvider = "provider"
	AttrReason   = "reason"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
