package domain

import (
	"encoding/json"
	"time"
)

// JobStatus enumerates generation job lifecycle states.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// GenerationJob is a unit of deferred content production. The payload is
// opaque to this service; the generation backend owns its shape. Priority is
// derived from the owner's subscription plan at enqueue time.
type GenerationJob struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Type       AssetType       `json:"type"`
	Priority   int             `json:"priority"`
	Payload    json.RawMessage `json:"payload"`
	RetryCount int             `json:"retryCount"`
	Status     JobStatus       `json:"status"`
	ResultURL  string          `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
