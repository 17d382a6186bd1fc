package jobmodel

import "time"

type JobStatus string
type InternalStatus string
type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	IngestInit       InternalStatus = "IngestInit"
	IngestExtracting InternalStatus = "Extracting"
	IngestChunking   InternalStatus = "Chunking"
	IngestEmbedding  InternalStatus = "Embedding"

	RetrieveInit InternalStatus = "RetrieveInit"
	VectorDBCall InternalStatus = "VectorDB"

	Error    InternalStatus = "Error"
	Complete InternalStatus = "Complete"

	JobTypeIngest         JobType = "Ingest"
	JobTypeDeleteDocument JobType = "DeleteDocument"
	JobTypeDropTenant     JobType = "DropTenant"
)

// Job is one unit of background work. Ingest jobs carry the raw document
// bytes; delete jobs carry only identifiers.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	TenantID    string         `json:"tenant_id"`
	DocumentID  string         `json:"document_id"`
	Filename    string         `json:"filename,omitempty"`
	Format      string         `json:"format,omitempty"`
	Content     []byte         `json:"-"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}
