package store

import (
	"context"
	"sync"

	"github.com/snipbot/ragservice/internal/domain/docmodel"
)

// InMemoryDocumentStore is the fallback registry when redis is offline.
// Records do not survive a restart; fine for local runs, not for prod.
type InMemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]docmodel.DocumentRecord
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{docs: make(map[string]docmodel.DocumentRecord)}
}

func (s *InMemoryDocumentStore) SaveDocument(_ context.Context, doc docmodel.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(_ context.Context, docID string) (docmodel.DocumentRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, found := s.docs[docID]
	return doc, found
}

func (s *InMemoryDocumentStore) ListDocuments(_ context.Context, tenantID string) []docmodel.DocumentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []docmodel.DocumentRecord
	for _, doc := range s.docs {
		if doc.TenantID == tenantID {
			docs = append(docs, doc)
		}
	}
	return docs
}

func (s *InMemoryDocumentStore) DeleteDocument(_ context.Context, doc docmodel.DocumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, doc.ID)
}
