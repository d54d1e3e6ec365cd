package scheduler

import (
	"errors"
	"fmt"
)

// Sentinel errors for scheduler operations. Callers match them with errors.Is.
var (
	// ErrSchedulerNotFound indicates no supported scheduler binary was found
	ErrSchedulerNotFound = errors.New("no supported scheduler found on this system")

	// ErrSchedulerNotAvailable indicates the requested scheduler is not usable here
	ErrSchedulerNotAvailable = errors.New("scheduler not available on this system")

	// ErrScriptNotFound indicates the job script path does not exist
	ErrScriptNotFound = errors.New("job script not found")

	// ErrNoOutputDirective indicates the script carries no output-path directive
	ErrNoOutputDirective = errors.New("no output directive found in job script")

	// ErrJobIDParseFailed indicates the submit command succeeded but its
	// output did not contain a recognizable job ID
	ErrJobIDParseFailed = errors.New("could not parse job ID from scheduler output")
)

// SubmissionError wraps a failed submit invocation together with the
// scheduler's combined output, which usually names the real cause.
type SubmissionError struct {
	Scheduler string
	Output    string
	Err       error
}

func (e *SubmissionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s submission failed: %v: %s", e.Scheduler, e.Err, e.Output)
	}
	return fmt.Sprintf("%s submission failed: %v", e.Scheduler, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
