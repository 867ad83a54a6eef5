package model

// JobStatus represents the status of a download job
type JobStatus string

const (
	// JobStatusPending means the job is accepted but not started
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means the download is in progress
	JobStatusRunning JobStatus = "Running"

	// JobStatusCompleted means the job finished successfully
	JobStatusCompleted JobStatus = "Completed"

	// JobStatusError means the job failed with an error
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is in an active state
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusRunning
}

// IsFinished returns true if the job is in a finished state (completed or error)
func (js JobStatus) IsFinished() bool {
	return js == JobStatusCompleted || js == JobStatusError
}
