package embedding

import "context"

// Embedder is the text-to-vector capability the vector store adapter
// delegates to. The pipeline itself never touches vectors.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string, isHugeDataSet bool) ([][]float32, error)
}
