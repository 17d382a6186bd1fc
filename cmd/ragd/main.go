// @title           Tenant RAG API
// @version         1.0
// @description     Multi-tenant document ingestion and retrieval
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/snipbot/ragservice/internal/config"
	"github.com/snipbot/ragservice/internal/data/store"
	"github.com/snipbot/ragservice/internal/domain/jobmodel"
	"github.com/snipbot/ragservice/internal/handlers"
	"github.com/snipbot/ragservice/internal/job"
	"github.com/snipbot/ragservice/internal/mcpserver"
	"github.com/snipbot/ragservice/internal/rag"
	"github.com/snipbot/ragservice/internal/rag/embedding"
	"github.com/snipbot/ragservice/internal/rag/embedding/google"
	"github.com/snipbot/ragservice/internal/rag/embedding/openai"
	"github.com/snipbot/ragservice/internal/rag/vectorstore/qdrantstore"
	"github.com/snipbot/ragservice/internal/server"
	"github.com/snipbot/ragservice/internal/worker"
	"github.com/snipbot/ragservice/pkg/logger_i"
)

var (
	listenAddr        string
	embeddingProvider string
	serveMCP          bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&embeddingProvider, "embedding-provider", "google", "embedding provider: google or openai")
	flag.BoolVar(&serveMCP, "mcp", false, "serve the MCP search tool over stdio instead of HTTP")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and document registry
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		DocumentStore:     store.GetRedisDocumentStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.DocumentStore == nil {
		logger.Error("Redis store is offline")
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			return
		}
		serviceConfig.DocumentStore = store.InitInMemoryDocumentStore()
	}
	service := job.InitJobService(serviceConfig)

	var embeddingService embedding.Embedder
	switch embeddingProvider {
	case "openai":
		embeddingService = openai.GetOpenAIEmbeddingClient(config.OpenAIAPIKey, config.OpenAIEmbeddingModel)
	default:
		embeddingService = google.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	}

	if embeddingService == nil {
		logger.Error("Embedding service failed to initialize. Shutting down.")
		return
	}

	vectorStore, err := qdrantstore.New(serviceContext, embeddingService)
	if err != nil {
		logger.Error("Vector store failed to initialize. Shutting down.", "error", err)
		return
	}

	ragService := rag.NewService(vectorStore, rag.DefaultConfig())

	handlers.InitJobHandler(service, ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	if serveMCP {
		if err := mcpserver.NewServer(ragService).Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
