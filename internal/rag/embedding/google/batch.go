package google

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/snipbot/ragservice/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func getContent(texts []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}
	return contentsToSend
}

func doRetry(err error, log *logger_i.Logger) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			log.Error("Rate limit hit", "error", err)
			return true
		}
	}
	return false
}

// batchJobEmbedding pushes a huge document through the offline batch API
// instead of hammering the synchronous endpoint.
func (c *client) batchJobEmbedding(ctx context.Context, texts []string, log *logger_i.Logger) ([][]float32, error) {
	conf := genai.EmbedContentConfig{OutputDimensionality: &dimension}
	source := genai.EmbeddingsBatchJobSource{
		InlinedRequests: &genai.EmbedContentBatch{
			Config:   &conf,
			Contents: getContent(texts),
		},
	}

	jobName := uuid.New().String()
	log = log.With("batchJobName", jobName, "texts", len(texts))

	_, err := c.genAi.Batches.CreateEmbeddings(ctx, &c.model, &source,
		&genai.CreateEmbeddingsBatchJobConfig{DisplayName: jobName})
	if err != nil {
		log.Error("Error creating batch embedding job", "error", err.Error())
		return nil, err
	}

	job, err := c.pollForAnswer(ctx, jobName, log)
	if err != nil {
		return nil, err
	}
	return collectBatchVectors(job, log), nil
}

func (c *client) pollForAnswer(ctx context.Context, batchJobName string, log *logger_i.Logger) (*genai.BatchJob, error) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Error("batch job poll cancelled", "error", ctx.Err())
			return nil, ctx.Err()

		case <-ticker.C:
			job, err := c.genAi.Batches.Get(ctx, batchJobName, nil)
			if err != nil {
				log.Error("Error getting batch job", "error", err)
				continue
			}

			switch job.State {
			case "JOB_STATE_SUCCEEDED":
				return job, nil
			case "JOB_STATE_FAILED":
				log.Error("batch job failed", "message", job.Error.Message)
			case "JOB_STATE_CANCELLED", "JOB_STATE_EXPIRED", "JOB_STATE_PARTIALLY_SUCCEEDED":
				log.Error("batch job ended prematurely", "state", job.State)
			}
		}
	}
}

func collectBatchVectors(job *genai.BatchJob, log *logger_i.Logger) [][]float32 {
	responses := job.Dest.InlinedEmbedContentResponses
	if len(responses) == 0 {
		return [][]float32{}
	}

	var vectors [][]float32
	for _, r := range responses {
		if r == nil || r.Error != nil || r.Response == nil || r.Response.Embedding == nil {
			log.Error("A result in the embedding batch failed", "result", r)
			vectors = append(vectors, nil)
			continue
		}
		vectors = append(vectors, r.Response.Embedding.Values)
	}
	return vectors
}
