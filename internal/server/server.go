package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/SupportBot/internal/adapter/utils"
	"github.com/akolanti/SupportBot/internal/config"
	"github.com/akolanti/SupportBot/internal/customHttpClient"
	"github.com/akolanti/SupportBot/internal/handlers"
	"github.com/akolanti/SupportBot/internal/middleware"
	"github.com/akolanti/SupportBot/pkg/logger_i"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// NewRouter registers every route; mcpHandler is mounted at /mcp when non-nil.
func NewRouter(mcpHandler http.Handler) http.Handler {
	r := utils.GetRouter()

	// probes skip auth and rate limiting
	r.Router.Get("/health", handlers.GetHandler)
	r.Router.Post("/chat", middleware.ChatHandler)
	r.Router.Get("/status/{id}", middleware.GetStatusHandler)
	r.Router.Post("/ask", middleware.AskHandler)
	r.Router.Get("/help/get/{question}", middleware.HelpQueueHandler)
	r.Router.Get("/help/answer/{question}", middleware.HelpAnswerHandler)
	r.Router.Get("/ticket/{id}", middleware.GetTicketHandler)
	r.Router.Get("/session/{id}", middleware.GetSessionHandler)
	r.Router.Get("/history/{id}", middleware.GetHistoryHandler)
	if mcpHandler != nil {
		r.Router.Handle("/mcp", middleware.WrapHandler(mcpHandler))
	}
	return r.Router
}

// CreateServer builds the http server; Start serves it.
func CreateServer(listenAddr string, mcpHandler http.Handler) {
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      NewRouter(mcpHandler),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}

func Start() {
	_logger.Info("Server is listening at", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", server.Addr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		customHttpClient.CloseIdleConnections()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
