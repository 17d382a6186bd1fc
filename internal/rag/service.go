package rag

import (
	"context"
	"strings"
	"time"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/metrics"
	"github.com/snipbot/ragservice/internal/rag/chunker"
	"github.com/snipbot/ragservice/internal/rag/extract"
	"github.com/snipbot/ragservice/internal/rag/vectorstore"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

// Service is the public contract of the ingestion and retrieval core. The
// worker only ever talks to this; it has no idea which vector index or
// embedding provider sits underneath.
type Service interface {
	// IngestDocument runs extract -> chunk -> upsert for one document and
	// returns the chunk count. Every failure is terminal for that document;
	// the caller owns the document record and must mark it failed.
	IngestDocument(ctx context.Context, req ragmodel.IngestRequest) (int, error)

	// Retrieve assembles the context block for a tenant query. found=false
	// means no collection or nothing relevant; not an error.
	Retrieve(ctx context.Context, tenantID string, query string) (contextBlock string, found bool, err error)

	// DeleteDocument removes a document's chunks from the tenant collection.
	DeleteDocument(ctx context.Context, tenantID string, documentID string) error

	// DropTenant removes the tenant's entire collection.
	DropTenant(ctx context.Context, tenantID string) error
}

// Config carries the tunables that drifted across revisions of this pipeline.
// They live here, not in extraction or chunking logic, so policy changes
// stay one-line edits.
type Config struct {
	ChunkOptions chunker.Options
	TopK         int
	MaxDistance  float32
}

func DefaultConfig() Config {
	return Config{
		ChunkOptions: chunker.DefaultOptions(),
		TopK:         config.RetrievalTopK,
		MaxDistance:  config.RetrievalMaxDistance,
	}
}

type service struct {
	store  vectorstore.TenantStore
	cfg    Config
	logger *logger_i.Logger
}

// NewService constructor; swapping the TenantStore for the in-memory one is
// how the tests isolate tenants without a running index.
func NewService(store vectorstore.TenantStore, cfg Config) Service {
	return &service{
		store:  store,
		cfg:    cfg,
		logger: logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) IngestDocument(ctx context.Context, req ragmodel.IngestRequest) (int, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	log := s.logger.WithTrace(ctx).With("tenant", req.TenantID, "doc", req.DocumentID)
	log.Debug("Processing document", "filename", req.Filename, "format", req.Format, "bytes", len(req.Content))

	text, err := s.extractStep(req)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, ragmodel.ErrEmptyContent
	}

	pieces := s.chunkStep(text)
	if len(pieces) == 0 {
		return 0, ragmodel.ErrEmptyResult
	}
	log.Debug("Chunked document", "chunks", len(pieces))

	chunks := make([]ragmodel.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = ragmodel.Chunk{
			ID:         vectorstore.ChunkPointID(req.TenantID, req.DocumentID, i),
			TenantID:   req.TenantID,
			DocumentID: req.DocumentID,
			Filename:   req.Filename,
			Ordinal:    i,
			Text:       piece,
		}
	}

	if err := s.store.EnsureCollection(ctx, req.TenantID); err != nil {
		return 0, err
	}

	// Idempotent replace: deterministic ids alone cannot clear stale chunks
	// when a shorter version of the document comes back through.
	if err := s.store.DeleteByDocument(ctx, req.TenantID, req.DocumentID); err != nil {
		return 0, err
	}

	if err := s.upsertStep(ctx, req.TenantID, chunks); err != nil {
		return 0, err
	}

	metrics.CaptureChunkCount(len(chunks))
	return len(chunks), nil
}

func (s *service) Retrieve(ctx context.Context, tenantID string, query string) (string, bool, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("context_retrieval", time.Since(start)) }()

	matches, err := s.store.Query(ctx, tenantID, query, s.cfg.TopK)
	if err != nil {
		return "", false, err
	}

	// Relevance cutoff: a nearest neighbour is not necessarily a relevant
	// one. Beyond the distance ceiling everything is noise.
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Distance >= s.cfg.MaxDistance {
			continue
		}
		filename := m.Filename
		if filename == "" {
			filename = "Unknown"
		}
		parts = append(parts, "[From: "+filename+"]\n"+m.Text)
	}

	if len(parts) == 0 {
		return "", false, nil
	}
	return strings.Join(parts, config.ContextSeparator), true, nil
}

func (s *service) DeleteDocument(ctx context.Context, tenantID string, documentID string) error {
	return s.store.DeleteByDocument(ctx, tenantID, documentID)
}

func (s *service) DropTenant(ctx context.Context, tenantID string) error {
	return s.store.DeleteCollection(ctx, tenantID)
}

func (s *service) extractStep(req ragmodel.IngestRequest) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()
	return extract.Extract(req.Content, req.Format)
}

func (s *service) chunkStep(text string) []string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()
	return chunker.Split(text, s.cfg.ChunkOptions)
}

func (s *service) upsertStep(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding_upsert", time.Since(start)) }()
	return s.store.UpsertChunks(ctx, tenantID, chunks)
}
