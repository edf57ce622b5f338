// @title           Financial Document Q&A API
// @version         1.0
// @description     Upload financial filings, extract metrics and ask questions about them.
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

	"github.com/nvasani/findocqa/internal/config"
	"github.com/nvasani/findocqa/internal/data/store"
	"github.com/nvasani/findocqa/internal/docqa"
	"github.com/nvasani/findocqa/internal/docqa/llm"
	"github.com/nvasani/findocqa/internal/docqa/llm/gemini"
	"github.com/nvasani/findocqa/internal/docqa/llm/ollama"
	"github.com/nvasani/findocqa/internal/docqa/llm/openaiCompat"
	jobmodel "github.com/nvasani/findocqa/internal/domain/jobModel"
	"github.com/nvasani/findocqa/internal/handlers"
	"github.com/nvasani/findocqa/internal/job"
	"github.com/nvasani/findocqa/internal/server"
	"github.com/nvasani/findocqa/internal/worker"
	"github.com/nvasani/findocqa/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}

	jobStore := store.GetRedisJobStore(serviceContext)
	sessionStore := store.GetRedisSessionStore(serviceContext)
	if jobStore == nil || sessionStore == nil {
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("Redis stores are offline")
			return
		}
		logger.Warn("Redis stores are offline, falling back to in-memory stores")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.SessionStore = store.InitInMemorySessionStore()
	} else {
		serviceConfig.JobStore = jobStore
		serviceConfig.SessionStore = sessionStore
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	//rule answers below the confidence threshold are retried against the model,
	//a nil provider keeps the service rules-only
	llmProvider := initProvider(serviceContext)
	if llmProvider == nil {
		logger.Warn("No model provider configured, answering from rules only")
	}

	docqaService := docqa.NewService(serviceConfig.SessionStore, llmProvider)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, docqaService)
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

func initProvider(ctx context.Context) llm.Provider {
	switch config.Getenv("MODEL_PROVIDER", config.DefaultProvider) {
	case "ollama":
		return ollama.GetOllamaClient(config.Getenv("OLLAMA_URL", config.OllamaURL), config.Getenv("OLLAMA_MODEL", config.OllamaModel))
	case "openai":
		return openaiCompat.GetOpenAIClient(config.Getenv("OPENAI_BASE_URL", config.OpenAICompatibleURL), os.Getenv("OPENAI_API_KEY"), config.Getenv("OPENAI_MODEL", config.OpenAIModelName))
	case "gemini":
		return gemini.GetGeminiClient(ctx, config.GeminiModelName, os.Getenv("GEMINI_API_KEY"))
	default:
		return nil
	}
}
