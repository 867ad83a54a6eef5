package model

import "time"

// ProgressFunc receives the overall completion percentage (0-100). Single-item
// downloads report per chunk, playlists once per completed item.
type ProgressFunc func(percent float64)

// ChunkFunc receives byte-level transfer progress for one stream
type ChunkFunc func(stream Stream, chunkLen int, bytesRemaining int64)

// ItemResult records the outcome of one playlist item
type ItemResult struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	OutputPath string `json:"output_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Succeeded reports whether the item downloaded without error
func (r ItemResult) Succeeded() bool {
	return r.Error == ""
}

// Job is the observable state of one download run. The orchestrator runs a
// job to completion within a single request; callers that poll from another
// goroutine must copy it under their own lock.
type Job struct {
	ID         string          `json:"id"`
	Request    DownloadRequest `json:"request"`
	Status     JobStatus       `json:"status"`
	Progress   float64         `json:"progress"` // 0 to 100
	Message    string          `json:"message,omitempty"`
	OutputPath string          `json:"output_path,omitempty"`
	Items      []ItemResult    `json:"items,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}
