package constants

// RunStatus is the canonical status for rows in parse_runs.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusWritten RunStatus = "WRITTEN" // report persisted
	RunStatusSkipped RunStatus = "SKIPPED" // unchanged since last successful run
	RunStatusFailed  RunStatus = "FAILED"
)
