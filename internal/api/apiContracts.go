package api

import "time"

type ExternalStatus string

const (
	ExternalStatusError ExternalStatus = "Error"
)

type DocumentResponse struct {
	Id           string         `json:"id" example:"5f0c9a1e-8a3b-4f4e-9a56-7e1f2a9b0c3d"`
	TenantId     string         `json:"tenant_id" example:"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"`
	Filename     string         `json:"filename" example:"handbook.pdf"`
	FileType     string         `json:"file_type" example:"pdf"`
	FileSize     int64          `json:"file_size" example:"482133"`
	Status       string         `json:"status" example:"completed"`
	ChunkCount   int            `json:"chunk_count" example:"12"`
	Error        *OutgoingError `json:"error,omitempty"`
	CreatedTime  time.Time      `json:"created_at"`
	ProcessedAt  time.Time      `json:"processed_at,omitempty"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Document not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type DocumentListResponse struct {
	TenantId  string             `json:"tenant_id"`
	Documents []DocumentResponse `json:"documents"`
}

type InitIngestResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type RetrieveResponse struct {
	Context string `json:"context"`
	Found   bool   `json:"found"`
}

// requests---------------------

type RetrieveRequest struct {
	Query string `json:"query" validate:"required"`
}
