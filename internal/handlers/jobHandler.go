package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
	"github.com/snipbot/ragservice/internal/job"
	"github.com/snipbot/ragservice/internal/metrics"
	"github.com/snipbot/ragservice/internal/rag"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service    *job.Service
	ragService rag.Service
}

type newJobData struct {
	id         string
	jobType    jobmodel.JobType
	tenantId   string
	documentId string
	filename   string
	format     string
	content    []byte
	traceId    string
}

func InitJobHandler(jobService *job.Service, ragService rag.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, ragService: ragService}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job", "type", newJob.jobType)
	handlerInstance.pushToJobChannel(newJob)
}

func SaveDocumentRecord(traceId string, doc docmodel.DocumentRecord) error {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	return handlerInstance.service.DocumentStore.SaveDocument(ctxC, doc)
}

func GetDocumentRecord(id string, traceId string) (result docmodel.DocumentRecord, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.DocumentStore.GetDocument(ctxC, id)
	}
	return result, false
}

func ListTenantDocuments(tenantId string, traceId string) []docmodel.DocumentRecord {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.DocumentStore.ListDocuments(ctxC, tenantId)
	}
	return nil
}

// Retrieve answers a tenant query synchronously. Queries don't go through the
// job channel: they carry no state to persist and callers wait on the answer.
func Retrieve(ctx context.Context, tenantId string, query string) (string, bool, error) {
	return handlerInstance.ragService.Retrieve(ctx, tenantId, query)
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobmodel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobmodel.JobStatusQueued
	_job.JobType = newJob.jobType
	_job.TenantID = newJob.tenantId
	_job.DocumentID = newJob.documentId

	if newJob.jobType == jobmodel.JobTypeIngest {
		_job.CurrentStep = jobmodel.IngestInit
		_job.Filename = newJob.filename
		_job.Format = newJob.format
		_job.Content = newJob.content
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//we will start a new worker every 10 requests - can also be configured
	// or
	//for performance - a new worker is added for an ingestion type job
	//ingestion involves extraction and embedding which might take time - external system call
	//worker will be removed if it has idle time - so it should be ok
	//this also allows us to only keep 1 worker running at most times therefore cutting resource spend

	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1) //after sending a request increment counter
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobmodel.JobTypeIngest {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
