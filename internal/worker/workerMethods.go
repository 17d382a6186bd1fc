package worker

import (
	"context"
	"time"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/metrics"
)

func executeJob(currentJob jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(currentJob.Status), time.Since(start))
	}()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, currentJob.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 60*time.Second)
	defer cancel()

	log := logger.With("traceId", currentJob.TraceId, "jobId", currentJob.Id)
	log.Debug("Processing job", "type", currentJob.JobType)

	switch currentJob.JobType {
	case jobmodel.JobTypeIngest:
		currentJob = ingestDocument(ctx, currentJob)
	case jobmodel.JobTypeDeleteDocument:
		currentJob = deleteDocument(ctx, currentJob)
	case jobmodel.JobTypeDropTenant:
		currentJob = dropTenant(ctx, currentJob)
	default:
		log.Error("Unknown job type", "type", currentJob.JobType)
		currentJob.Status = jobmodel.JobStatusError
	}

	currentJob.EndTime = time.Now()
}

// ingestDocument is the caller of the pipeline's contract: it owns the
// document record and never leaves it in an indeterminate status.
func ingestDocument(ctx context.Context, currentJob jobmodel.Job) jobmodel.Job {
	unlock := _jobService.LockDocument(currentJob.DocumentID)
	defer unlock()

	doc, found := _jobService.DocumentStore.GetDocument(ctx, currentJob.DocumentID)
	if !found {
		logger.Error("Document record missing for ingest job", "doc", currentJob.DocumentID)
		currentJob.Status = jobmodel.JobStatusError
		return currentJob
	}

	doc.Status = docmodel.StatusProcessing
	if err := _jobService.DocumentStore.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to mark document processing", "doc", doc.ID, "error", err)
	}

	currentJob.CurrentStep = jobmodel.IngestExtracting
	chunkCount, err := _ragService.IngestDocument(ctx, ragmodel.IngestRequest{
		TenantID:   currentJob.TenantID,
		DocumentID: currentJob.DocumentID,
		Filename:   currentJob.Filename,
		Format:     ragmodel.FormatTag(currentJob.Format),
		Content:    currentJob.Content,
	})

	if err != nil {
		logger.Error("Ingestion failed", "doc", doc.ID, "error", err)
		doc.Status = docmodel.StatusFailed
		doc.ErrorMessage = ragmodel.UserMessage(err, config.ErrorMessageLimit)
		doc.ProcessedAt = time.Now()
		currentJob.Status = jobmodel.JobStatusError
		currentJob.Error = jobmodel.JobError{Message: doc.ErrorMessage}
		metrics.CaptureDocumentIngested(string(docmodel.StatusFailed))
	} else {
		doc.Status = docmodel.StatusCompleted
		doc.ChunkCount = chunkCount
		doc.ErrorMessage = ""
		doc.ProcessedAt = time.Now()
		currentJob.Status = jobmodel.JobStatusComplete
		currentJob.CurrentStep = jobmodel.Complete
		metrics.CaptureDocumentIngested(string(docmodel.StatusCompleted))
	}

	if err := _jobService.DocumentStore.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to persist terminal document status", "doc", doc.ID, "error", err)
	}
	return currentJob
}

func deleteDocument(ctx context.Context, currentJob jobmodel.Job) jobmodel.Job {
	unlock := _jobService.LockDocument(currentJob.DocumentID)
	defer unlock()

	if err := _ragService.DeleteDocument(ctx, currentJob.TenantID, currentJob.DocumentID); err != nil {
		logger.Error("Failed to delete document chunks", "doc", currentJob.DocumentID, "error", err)
		currentJob.Status = jobmodel.JobStatusError
		return currentJob
	}

	if doc, found := _jobService.DocumentStore.GetDocument(ctx, currentJob.DocumentID); found {
		_jobService.DocumentStore.DeleteDocument(ctx, doc)
	}
	currentJob.Status = jobmodel.JobStatusComplete
	return currentJob
}

func dropTenant(ctx context.Context, currentJob jobmodel.Job) jobmodel.Job {
	if err := _ragService.DropTenant(ctx, currentJob.TenantID); err != nil {
		logger.Error("Failed to drop tenant collection", "tenant", currentJob.TenantID, "error", err)
		currentJob.Status = jobmodel.JobStatusError
		return currentJob
	}
	currentJob.Status = jobmodel.JobStatusComplete
	return currentJob
}
