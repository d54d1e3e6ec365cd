package follow

import "errors"

var (
	// ErrWaitTimeout indicates the log file never appeared in time
	ErrWaitTimeout = errors.New("timed out waiting for log file to appear")

	// ErrIdleTimeout indicates the log file stopped growing for too long
	ErrIdleTimeout = errors.New("timed out waiting for new log output")
)
