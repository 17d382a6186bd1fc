package qdrantstore

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/rag/embedding"
	"github.com/snipbot/ragservice/internal/rag/vectorstore"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

const upsertBatchSize = 100

// hugeDataSetThreshold flips the embedder to its offline batch path.
const hugeDataSetThreshold = 1000000

// Store implements vectorstore.TenantStore over a Qdrant instance. The
// client and the embedder are injected; there is no package-level handle, so
// tests can run isolated stores per tenant.
type Store struct {
	client   *qdrant.Client
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func New(ctx context.Context, embedder embedding.Embedder) (*Store, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := os.Getenv("QDRANT_HOST")
	port, err := strconv.Atoi(os.Getenv("QDRANT_PORT"))
	if host == "" || err != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil, err
	}

	store := &Store{client: client, embedder: embedder, logger: logger}
	go store.closeOnDone(ctx)
	return store, nil
}

func (s *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	s.logger.Info("Shutting down Qdrant")
	if err := s.client.Close(); err != nil {
		s.logger.Error("could not close Qdrant", "error", err)
	}
}

func (s *Store) EnsureCollection(ctx context.Context, tenantID string) error {
	name := vectorstore.CollectionName(tenantID)

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("collection lookup failed: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection failed: %w", err)
	}
	return nil
}

func (s *Store) UpsertChunks(ctx context.Context, tenantID string, chunks []ragmodel.Chunk) error {
	log := s.logger.WithTrace(ctx)
	name := vectorstore.CollectionName(tenantID)
	isHugeDataSet := len(chunks) > hugeDataSetThreshold

	for i := 0; i < len(chunks); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Text
		}

		log.Debug("Embedding chunk batch", "batch size", len(batch))
		vectors, err := s.embedder.BatchEmbedding(ctx, texts, isHugeDataSet)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(batch), len(vectors))
		}

		points := make([]*qdrant.PointStruct, len(batch))
		for j, chunk := range batch {
			points[j] = &qdrant.PointStruct{
				Id:      qdrant.NewID(chunk.ID),
				Vectors: qdrant.NewVectors(vectors[j]...),
				Payload: qdrant.NewValueMap(map[string]any{
					"content":     chunk.Text,
					"doc_id":      chunk.DocumentID,
					"filename":    chunk.Filename,
					"chunk_index": chunk.Ordinal,
				}),
			}
		}

		_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: name,
			Points:         points,
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			return fmt.Errorf("qdrant upsert failed: %w", err)
		}
	}

	return nil
}

func (s *Store) Query(ctx context.Context, tenantID string, queryText string, k int) ([]ragmodel.Match, error) {
	log := s.logger.WithTrace(ctx)
	name := vectorstore.CollectionName(tenantID)

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("collection lookup failed: %w", err)
	}
	if !exists {
		// Nothing uploaded yet. A normal state, not an error.
		return nil, nil
	}

	vector, err := s.embedder.GetEmbedding(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("query embedding failed: %w", err)
	}

	result, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	matches := make([]ragmodel.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, ragmodel.Match{
			Text:     hit.Payload["content"].GetStringValue(),
			Filename: hit.Payload["filename"].GetStringValue(),
			// Qdrant scores cosine as similarity, higher is closer. Callers
			// filter on cosine distance, so convert here.
			Distance: 1 - hit.Score,
		})
	}
	return matches, nil
}

func (s *Store) DeleteByDocument(ctx context.Context, tenantID string, documentID string) error {
	name := vectorstore.CollectionName(tenantID)

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("collection lookup failed: %w", err)
	}
	if !exists {
		return nil
	}

	_, err = s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: name,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("doc_id", documentID)},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}
	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, tenantID string) error {
	name := vectorstore.CollectionName(tenantID)

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("collection lookup failed: %w", err)
	}
	if !exists {
		return nil
	}
	return s.client.DeleteCollection(ctx, name)
}
