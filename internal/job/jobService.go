package job

import (
	"sync"

	"github.com/snipbot/ragservice/internal/domain/docmodel"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
)

type Service struct {
	JobChannel        chan jobmodel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	DocumentStore     docmodel.DocumentStore

	docLocks sync.Map //document id -> *sync.Mutex
}

type ServiceConfig struct {
	JobChannel        chan jobmodel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	DocumentStore     docmodel.DocumentStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		DocumentStore:     cfg.DocumentStore,
	}
}

// LockDocument serializes work on one document id. The pipeline's
// delete-then-upsert replace is not atomic, so two concurrent ingestions of
// the same document would corrupt the chunk set; workers take this lock for
// the duration of the job.
func (s *Service) LockDocument(docID string) func() {
	value, _ := s.docLocks.LoadOrStore(docID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
