package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, document records live in an in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//ingestion
	MaxUploadSizeBytes int64 = 10 << 20 // mirrors the upload cap enforced at the edge
	ErrorMessageLimit        = 500      //characters kept of a terminal ingestion error

	//chunking - sizes are characters, not tokens
	ChunkTargetSize = 1500
	ChunkOverlap    = 200
	MinChunkSize    = 50

	//retrieval
	RetrievalTopK        = 5
	RetrievalMaxDistance = 1.5 //cosine distance; anything further is noise
	ContextSeparator     = "\n\n---\n\n"

	//tenant collections
	CollectionPrefix = "tenant_"

	EmbeddingOutputDimensionality int32 = 1536

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//embeddings
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DBs we can use
	RedisDocumentStore = 0

	RedisDocumentStoreTTL = 0 * time.Second //document records do not expire

	NoAuthBypass = true //flip off once the edge issues real bearer tokens
)
