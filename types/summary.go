package types

import "time"

// RunSummary aggregates the final counters of one pipeline run.
//
// Completed counts every finished job, success or failure; Failed counts
// the subset that failed. Per-job failures are reported here, never fatal
// to the run itself.
type RunSummary struct {
	// RunID is the identifier stamped into every log line of the run.
	RunID string `json:"run_id"`
	// Total is the number of entries dispatched after filtering.
	Total uint64 `json:"total"`
	// Completed is the number of jobs that finished.
	Completed uint64 `json:"completed"`
	// Failed is the number of jobs that finished with a failure outcome.
	Failed uint64 `json:"failed"`
	// Duration is the wall-clock duration of the run.
	Duration time.Duration `json:"duration"`
}
