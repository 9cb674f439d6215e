// @title           Support Bot API
// @version         1.0
// @description     FAQ support chatbot: queued and synchronous answers, support tickets and session state.

// @contact.name    API Support
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/akolanti/SupportBot/internal/chatbot"
	"github.com/akolanti/SupportBot/internal/chatbot/llm/selector"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/data/store"
	jobmodel "github.com/akolanti/SupportBot/internal/domain/jobModel"
	"github.com/akolanti/SupportBot/internal/faq/corpus"
	"github.com/akolanti/SupportBot/internal/handlers"
	"github.com/akolanti/SupportBot/internal/job"
	"github.com/akolanti/SupportBot/internal/mcpServer"
	"github.com/akolanti/SupportBot/internal/middleware"
	"github.com/akolanti/SupportBot/internal/server"
	"github.com/akolanti/SupportBot/internal/worker"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	flag "github.com/spf13/pflag"
)

var (
	listenAddr        string
	faqPath           string
	envFile           string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	//config
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file to load")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address (LISTEN_ADDR)")
	flag.StringVar(&faqPath, "faq", "", "FAQ data file, json or yaml (FAQ_DATA_PATH)")
	flag.Parse()

	config.LoadEnvironment(envFile)
	if listenAddr == "" {
		listenAddr = config.ListenAddr
	}
	if faqPath == "" {
		faqPath = config.FaqDataPath
	}

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	faq, err := corpus.LoadFile(faqPath)
	if err != nil {
		logger.Error("Could not load the FAQ data", "path", faqPath, "error", err)
		os.Exit(1)
	}
	logger.Info("Loaded FAQ data", "path", faqPath, "entries", faq.Len())

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
	logger.Info("Starting job service")
	initStores(serviceContext, &serviceConfig, logger)
	service := job.InitJobService(serviceConfig)

	llmProvider, err := selector.FromConfig(serviceContext)
	if err != nil {
		// the bot still answers greetings and tickets; FAQ questions get the unreachable reply
		logger.Error("LLM provider is not available", "provider", config.LLMProvider, "error", err)
	} else {
		logger.Info("Using LLM provider", "provider", llmProvider.Name())
	}

	chatbotService := chatbot.NewService(faq.Entries(), llmProvider, service.SessionStore, service.TicketStore, chatbot.DefaultOptions())

	handlers.InitJobHandler(service, chatbotService)

	//init worker pool
	worker.InitServices(service, chatbotService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)
	middleware.StartPruning(stopExecution, 10*time.Minute)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	server.CreateServer(listenAddr, mcpServer.Handler(mcpServer.NewServer(chatbotService, service.TicketStore)))
	go server.ShutDownHandler(shutdownParams)
	go server.Start()

	<-stopExecution
	logger.Info("Server stopped")
}

// initStores prefers redis and falls back to memory per store.
func initStores(ctx context.Context, cfg *job.ServiceConfig, logger *logger_i.Logger) {
	fallback := func(name string) {
		if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
			logger.Error("Redis store is offline and fallback is disabled", "store", name)
			os.Exit(1)
		}
		logger.Error("Redis store is offline, using memory", "store", name)
	}

	if s := store.GetRedisJobStore(ctx); s != nil {
		cfg.JobStore = s
	} else {
		fallback("job")
		cfg.JobStore = store.InitInMemoryJobStore()
	}
	if s := store.GetRedisMessageStore(ctx); s != nil {
		cfg.MessageStore = s
	} else {
		fallback("message")
		cfg.MessageStore = store.InitMessageStore()
	}
	if s := store.GetRedisSessionStore(ctx); s != nil {
		cfg.SessionStore = s
	} else {
		fallback("session")
		cfg.SessionStore = store.InitInMemorySessionStore(config.SessionTTL, config.SessionCleanupInterval)
	}
	if s := store.GetRedisTicketStore(ctx); s != nil {
		cfg.TicketStore = s
	} else {
		fallback("ticket")
		cfg.TicketStore = store.InitInMemoryTicketStore()
	}
}
