// @title           Interview Prep API
// @version         1.0
// @description     This API handles document summarization, onboarding, corpus ingestion and interview plan generation.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
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

	"github.com/kaviapp/kavi/internal/config"
	"github.com/kaviapp/kavi/internal/data/store"
	"github.com/kaviapp/kavi/internal/domain/candidateModel"
	jobmodel "github.com/kaviapp/kavi/internal/domain/jobModel"
	"github.com/kaviapp/kavi/internal/handlers"
	"github.com/kaviapp/kavi/internal/job"
	"github.com/kaviapp/kavi/internal/mcpserver"
	"github.com/kaviapp/kavi/internal/rag"
	"github.com/kaviapp/kavi/internal/rag/corpus"
	"github.com/kaviapp/kavi/internal/rag/embedding"
	"github.com/kaviapp/kavi/internal/rag/embedding/googleEmbedding"
	"github.com/kaviapp/kavi/internal/rag/embedding/openAIEmbedding"
	"github.com/kaviapp/kavi/internal/rag/llm"
	"github.com/kaviapp/kavi/internal/rag/llm/gemini"
	"github.com/kaviapp/kavi/internal/rag/llm/openAIChat"
	"github.com/kaviapp/kavi/internal/rag/plan"
	"github.com/kaviapp/kavi/internal/rag/vectorDB"
	"github.com/kaviapp/kavi/internal/rag/vectorDB/qdrantDB"
	"github.com/kaviapp/kavi/internal/rag/vectorDB/sqliteDB"
	"github.com/kaviapp/kavi/internal/server"
	"github.com/kaviapp/kavi/internal/services/cvreader"
	"github.com/kaviapp/kavi/internal/services/onboarding"
	"github.com/kaviapp/kavi/internal/worker"
	"github.com/kaviapp/kavi/pkg/logger_i"
)

var (
	listenAddr        string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init(logger_i.Options{Prod: config.IS_PROD, ProdLevel: config.LOG_LEVEL_PROD})
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.BoolVar(&mcpMode, "mcp", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	vectorStore := initVectorStore(logger)
	llmProvider, embeddingService := initAIProvider(serviceContext, logger)

	if vectorStore == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorStore != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	loader := corpus.NewLoader(config.ChunkSize, config.ChunkOverlap)
	ragService := rag.NewService(loader, embeddingService, vectorStore, plan.NewGenerator(llmProvider))

	if mcpMode {
		mcpServer := mcpserver.NewServer(ragService)
		if err := mcpServer.Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err.Error())
		}
		return
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	//init job store and session store, in-memory when redis is offline
	redisJobStore := store.GetRedisJobStore(serviceContext)
	redisSessionStore := store.GetRedisSessionStore(serviceContext)

	var jobStore jobmodel.JobStore
	var sessionStore candidateModel.SessionStore
	if redisJobStore == nil || redisSessionStore == nil {
		logger.Error("Redis stores are offline")
		jobStore = store.InitInMemoryJobStore()
		sessionStore = store.InitInMemorySessionStore()
	} else {
		jobStore = redisJobStore
		sessionStore = redisSessionStore
	}

	logger.Info("Starting job service")
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	})

	handlers.InitJobHandler(handlers.HandlerConfig{
		JobService:   service,
		RagService:   ragService,
		Reader:       cvreader.NewReader(llmProvider),
		Flow:         onboarding.NewFlow(llmProvider, sessionStore),
		SessionStore: sessionStore,
	})

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

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

func initVectorStore(logger *logger_i.Logger) vectorDB.DataProcessor {
	switch config.VectorBackend {
	case "qdrant":
		vectorStore, err := qdrantDB.New()
		if err != nil {
			logger.Error("Qdrant is offline", "error", err.Error())
			return nil
		}
		return vectorStore
	default:
		vectorStore, err := sqliteDB.New(config.DataDir)
		if err != nil {
			logger.Error("Could not open the embedded vector store", "error", err.Error())
			return nil
		}
		return vectorStore
	}
}

func initAIProvider(ctx context.Context, logger *logger_i.Logger) (llm.Provider, embedding.Embedder) {
	switch config.AIProvider {
	case "openai":
		return openAIChat.New(config.OpenAIModelName, config.OpenAIAPIKey),
			openAIEmbedding.New(config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
	default:
		llmProvider, err := gemini.New(ctx, config.GeminiModelName, config.GeminiAPIKey)
		if err != nil {
			logger.Error("Gemini client failed to initialize", "error", err.Error())
			return nil, nil
		}
		embeddingService, err := googleEmbedding.New(ctx, config.GoogleEmbeddingModel, config.GeminiAPIKey)
		if err != nil {
			logger.Error("Google embedding client failed to initialize", "error", err.Error())
			return nil, nil
		}
		return llmProvider, embeddingService
	}
}
