package reconciler

import "time"

const (
	defaultWorkerCount = 8
	defaultBatchLimit  = 256

	defaultGracePeriod = 30 * time.Second
	defaultMaxAge      = 24 * time.Hour

	idleSleepDuration      = 30 * time.Second
	postBatchSleepDuration = 5 * time.Second
	errorSleepDuration     = 10 * time.Second

	statusBatcherCapacity      = 500
	statusBatcherFlushInterval = 5 * time.Second
	statusBatcherRPS           = 10
)

// Outcomes recorded besides the transaction statuses themselves.
const (
	outcomeExpired = "expired"
	outcomeUnknown = "unknown"
)
