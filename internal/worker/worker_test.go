package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/data/store"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
	"github.com/snipbot/ragservice/internal/domain/ragmodel"
	"github.com/snipbot/ragservice/internal/job"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

// MockRagService to track if jobs are executed
type MockRagService struct {
	IngestedCount int32
	DeletedCount  int32
	DroppedCount  int32
	IngestErr     error
}

func (m *MockRagService) IngestDocument(ctx context.Context, req ragmodel.IngestRequest) (int, error) {
	atomic.AddInt32(&m.IngestedCount, 1)
	if m.IngestErr != nil {
		return 0, m.IngestErr
	}
	return 3, nil
}

func (m *MockRagService) Retrieve(ctx context.Context, tenantID string, query string) (string, bool, error) {
	return "", false, nil
}

func (m *MockRagService) DeleteDocument(ctx context.Context, tenantID string, documentID string) error {
	atomic.AddInt32(&m.DeletedCount, 1)
	return nil
}

func (m *MockRagService) DropTenant(ctx context.Context, tenantID string) error {
	atomic.AddInt32(&m.DroppedCount, 1)
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	// 1. Setup
	registry := store.InitInMemoryDocumentStore()
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobmodel.Job, 10),
		DispatcherChannel: make(chan bool, 10),
		DocumentStore:     registry,
	})
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(jobSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		// Signal dispatcher to create a worker
		jobSvc.DispatcherChannel <- true

		// Give it a millisecond to spawn
		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker completes an ingest job", func(t *testing.T) {
		registry.SaveDocument(context.Background(), docmodel.DocumentRecord{
			ID:       "doc-1",
			TenantID: "tenant-a",
			Filename: "notes.txt",
			Status:   docmodel.StatusPending,
		})

		jobSvc.JobChannel <- jobmodel.Job{
			Id:         "job-1",
			TraceId:    "trace-1",
			JobType:    jobmodel.JobTypeIngest,
			TenantID:   "tenant-a",
			DocumentID: "doc-1",
			Filename:   "notes.txt",
			Format:     string(ragmodel.FormatTXT),
			Content:    []byte("some content"),
			Status:     jobmodel.JobStatusQueued,
		}

		// Wait for worker to pick up and process
		time.Sleep(100 * time.Millisecond)

		if got := atomic.LoadInt32(&mockRag.IngestedCount); got != 1 {
			t.Errorf("Expected 1 ingest processed, got %d", got)
		}
		doc, found := registry.GetDocument(context.Background(), "doc-1")
		if !found || doc.Status != docmodel.StatusCompleted {
			t.Errorf("Document not marked completed: %+v found=%v", doc, found)
		}
		if doc.ChunkCount != 3 {
			t.Errorf("Chunk count got %d, want 3", doc.ChunkCount)
		}
	})

	t.Run("Worker handles delete and drop jobs", func(t *testing.T) {
		jobSvc.JobChannel <- jobmodel.Job{
			Id:         "job-2",
			JobType:    jobmodel.JobTypeDeleteDocument,
			TenantID:   "tenant-a",
			DocumentID: "doc-1",
		}
		jobSvc.JobChannel <- jobmodel.Job{
			Id:       "job-3",
			JobType:  jobmodel.JobTypeDropTenant,
			TenantID: "tenant-a",
		}

		time.Sleep(100 * time.Millisecond)

		if got := atomic.LoadInt32(&mockRag.DeletedCount); got != 1 {
			t.Errorf("Expected 1 delete processed, got %d", got)
		}
		if got := atomic.LoadInt32(&mockRag.DroppedCount); got != 1 {
			t.Errorf("Expected 1 drop processed, got %d", got)
		}
		if _, found := registry.GetDocument(context.Background(), "doc-1"); found {
			t.Error("Registry record survived the delete job")
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		// Send stop signal
		close(stopChan)

		// Wait for workers to exit
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_FailedIngestMarksDocument(t *testing.T) {
	registry := store.InitInMemoryDocumentStore()
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel:        make(chan jobmodel.Job, 1),
		DispatcherChannel: make(chan bool, 1),
		DocumentStore:     registry,
	})
	mockRag := &MockRagService{IngestErr: &ragmodel.ExtractionError{Format: ragmodel.FormatPDF, Err: context.DeadlineExceeded}}
	InitServices(jobSvc, mockRag)
	logger = logger_i.NewLogger("TestWorkerPool")

	registry.SaveDocument(context.Background(), docmodel.DocumentRecord{
		ID:       "doc-bad",
		TenantID: "tenant-a",
		Status:   docmodel.StatusPending,
	})

	executeJob(jobmodel.Job{
		Id:         "job-bad",
		JobType:    jobmodel.JobTypeIngest,
		TenantID:   "tenant-a",
		DocumentID: "doc-bad",
		Format:     string(ragmodel.FormatPDF),
		Content:    []byte("junk"),
	})

	doc, found := registry.GetDocument(context.Background(), "doc-bad")
	if !found || doc.Status != docmodel.StatusFailed {
		t.Fatalf("Document not marked failed: %+v found=%v", doc, found)
	}
	if doc.ErrorMessage == "" {
		t.Error("Failed document has no error message")
	}
	if len(doc.ErrorMessage) > config.ErrorMessageLimit {
		t.Errorf("Error message exceeds limit: %d chars", len(doc.ErrorMessage))
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("idle retirement waits out the configured timeout")
	}

	// Temporarily override globals for test
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 0) // every idle worker may retire
	logger = logger_i.NewLogger("TestWorkerPool")
	jobSvc := job.InitJobService(job.ServiceConfig{
		JobChannel: make(chan jobmodel.Job),
	})
	InitServices(jobSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	// Spawn 1 worker manually
	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Worker should have timed out and retired, but count is %d", count)
	}

	atomic.StoreInt64(&minWorkerCount, config.MinWorkerCount)
}
