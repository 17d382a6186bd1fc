package store

import (
	"context"
	"encoding/json"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/data/redisstore"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

const (
	docKeyPrefix       = "doc:"
	tenantDocsKeyPrefix = "tenantdocs:"
)

type RedisDocumentStore struct {
	store  *redisstore.Store
	logger *logger_i.Logger
}

// GetRedisDocumentStore returns nil when redis is offline; main falls back
// to the in-memory registry in that case.
func GetRedisDocumentStore(ctx context.Context) docmodel.DocumentStore {
	inner := redisstore.GetRedisStore(ctx, config.RedisDocumentStore)
	if inner == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc docmodel.DocumentRecord) error {
	log := s.logger.WithTrace(ctx).With("doc", doc.ID)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, docKeyPrefix+doc.ID, data, config.RedisDocumentStoreTTL); err != nil {
		return err
	}
	if err := s.store.SetAdd(ctx, tenantDocsKeyPrefix+doc.TenantID, doc.ID); err != nil {
		return err
	}
	log.Debug("Saved document record", "status", doc.Status)
	return nil
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, docID string) (docmodel.DocumentRecord, bool) {
	var doc docmodel.DocumentRecord

	val, err := s.store.Get(ctx, docKeyPrefix+docID)
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		s.logger.Error("Error reading document record", "doc", docID, "error", err)
		return doc, false
	}

	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("Corrupt document record", "doc", docID, "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context, tenantID string) []docmodel.DocumentRecord {
	ids, err := s.store.SetMembers(ctx, tenantDocsKeyPrefix+tenantID)
	if err != nil {
		s.logger.Error("Error listing tenant documents", "tenant", tenantID, "error", err)
		return nil
	}

	docs := make([]docmodel.DocumentRecord, 0, len(ids))
	for _, id := range ids {
		if doc, found := s.GetDocument(ctx, id); found {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, doc docmodel.DocumentRecord) {
	if err := s.store.Del(ctx, docKeyPrefix+doc.ID); err != nil {
		s.logger.Error("Error deleting document record", "doc", doc.ID, "error", err)
		return
	}
	if err := s.store.SetRemove(ctx, tenantDocsKeyPrefix+doc.TenantID, doc.ID); err != nil {
		s.logger.Error("Error unlinking document from tenant", "doc", doc.ID, "error", err)
	}
	s.logger.Debug("Document record deleted", "doc", doc.ID)
}

// TestDocumentStore builds a registry over an injected store; miniredis hook.
func TestDocumentStore(inner *redisstore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  inner,
		logger: logger_i.NewLogger("test document store"),
	}
}
