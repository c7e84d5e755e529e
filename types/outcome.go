package types

import "fmt"

// Stage identifies the pipeline stage a job failure occurred in.
type Stage string

// Pipeline stages, in execution order.
const (
	// StageFetch obtains the source tree from the entry's locator.
	StageFetch Stage = "fetch"
	// StageDiscover locates build inputs inside the fetched tree.
	StageDiscover Stage = "discover"
	// StageCompile produces the shared-library artifact.
	StageCompile Stage = "compile"
	// StageMerge records grammar metadata in the registry document.
	// Merge problems are logged as warnings and never fail a job, so no
	// failure outcome carries this stage.
	StageMerge Stage = "merge"
)

// OutcomeStatus is the status of a job outcome.
type OutcomeStatus string

const (
	// OutcomeSuccess indicates the job produced its artifact.
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeFailure indicates a pipeline stage failed.
	OutcomeFailure OutcomeStatus = "failure"
)

// JobOutcome is the result of executing one catalog entry through the
// pipeline. Exactly one outcome is produced per entry.
//
// ArtifactPath is set only for success; Stage and Message only for failure.
// Merge-stage problems never appear here: artifact production is the job's
// success criterion and registry bookkeeping is best-effort.
type JobOutcome struct {
	// Status discriminates the variant.
	Status OutcomeStatus `json:"status"`
	// ArtifactPath is the compiled shared-library path (success only).
	ArtifactPath string `json:"artifact_path,omitempty"`
	// Stage is the stage that failed (failure only).
	Stage Stage `json:"stage,omitempty"`
	// Message is a human-readable failure description (failure only).
	Message string `json:"message,omitempty"`
}

// Succeeded constructs a success outcome for the given artifact path.
func Succeeded(artifactPath string) JobOutcome {
	return JobOutcome{Status: OutcomeSuccess, ArtifactPath: artifactPath}
}

// Failed constructs a failure outcome for the given stage.
func Failed(stage Stage, err error) JobOutcome {
	return JobOutcome{Status: OutcomeFailure, Stage: stage, Message: err.Error()}
}

// IsFailure reports whether the outcome is a failure.
func (o JobOutcome) IsFailure() bool {
	return o.Status == OutcomeFailure
}

// String renders the outcome for status lines and logs.
func (o JobOutcome) String() string {
	if o.IsFailure() {
		return fmt.Sprintf("%s failed: %s", o.Stage, o.Message)
	}
	return fmt.Sprintf("built %s", o.ArtifactPath)
}
