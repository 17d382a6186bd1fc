package memstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/rag/embedding"
	"github.com/snipbot/ragservice/internal/rag/vectorstore"
)

type entry struct {
	chunk  ragmodel.Chunk
	vector []float32
}

type collection struct {
	entries map[string]entry //keyed by chunk id so re-insertion replaces
}

// Store is a brute-force cosine TenantStore kept entirely in memory. It backs
// tests and local runs; the semantics mirror the Qdrant adapter exactly.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	embedder    embedding.Embedder
}

func New(embedder embedding.Embedder) *Store {
	return &Store{
		collections: make(map[string]*collection),
		embedder:    embedder,
	}
}

func (s *Store) EnsureCollection(_ context.Context, tenantID string) error {
	name := vectorstore.CollectionName(tenantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		s.collections[name] = &collection{entries: make(map[string]entry)}
	}
	return nil
}

func (s *Store) UpsertChunks(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error {
	name := vectorstore.CollectionName(tenantID)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.BatchEmbedding(ctx, texts, false)
	if err != nil {
		return fmt.Errorf("embedding batch failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("collection %s does not exist", name)
	}
	for i, chunk := range chunks {
		coll.entries[chunk.ID] = entry{chunk: chunk, vector: vectors[i]}
	}
	return nil
}

func (s *Store) Query(ctx context.Context, tenantID string, queryText string, k int) ([]ragmodel.Match, error) {
	name := vectorstore.CollectionName(tenantID)

	s.mu.RLock()
	coll, ok := s.collections[name]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	vector, err := s.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]ragmodel.Match, 0, len(coll.entries))
	for _, e := range coll.entries {
		matches = append(matches, ragmodel.Match{
			Text:     e.chunk.Text,
			Filename: e.chunk.Filename,
			Distance: 1 - cosineSimilarity(vector, e.vector),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *Store) DeleteByDocument(_ context.Context, tenantID string, documentID string) error {
	name := vectorstore.CollectionName(tenantID)

	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[name]
	if !ok {
		return nil
	}
	for id, e := range coll.entries {
		if e.chunk.DocumentID == documentID {
			delete(coll.entries, id)
		}
	}
	return nil
}

func (s *Store) DeleteCollection(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, vectorstore.CollectionName(tenantID))
	return nil
}

// ChunkCount reports how many chunks a tenant holds; test hook.
func (s *Store) ChunkCount(tenantID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll, ok := s.collections[vectorstore.CollectionName(tenantID)]
	if !ok {
		return 0
	}
	return len(coll.entries)
}

func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
