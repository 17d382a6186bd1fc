package docmodel

import (
	"context"
	"time"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
)

type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentRecord is the registry's view of one uploaded document. It is the
// single source of truth for ingestion status; the pipeline itself never
// writes these.
type DocumentRecord struct {
	ID           string             `json:"id"`
	TenantID     string             `json:"tenant_id"`
	Filename     string             `json:"filename"`
	Format       ragmodel.FormatTag `json:"file_type"`
	SizeBytes    int64              `json:"file_size"`
	Status       DocumentStatus     `json:"status"`
	ChunkCount   int                `json:"chunk_count"`
	ErrorMessage string             `json:"error_message,omitempty"`
	CreatedTime  time.Time          `json:"created_at"`
	ProcessedAt  time.Time          `json:"processed_at,omitempty"`
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, doc DocumentRecord) error
	GetDocument(ctx context.Context, docID string) (DocumentRecord, bool)
	ListDocuments(ctx context.Context, tenantID string) []DocumentRecord
	DeleteDocument(ctx context.Context, doc DocumentRecord)
}
