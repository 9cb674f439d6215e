package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/SupportBot/internal/handlers"
	"github.com/akolanti/SupportBot/internal/metrics"
	"github.com/akolanti/SupportBot/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var logger = logger_i.NewLogger("middleware")

var ChatHandler = Wrap(handlers.ChatHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)
var AskHandler = Wrap(handlers.AskHandler)
var HelpQueueHandler = Wrap(handlers.HelpQueueHandler)
var HelpAnswerHandler = Wrap(handlers.HelpAnswerHandler)
var GetTicketHandler = Wrap(handlers.GetTicketHandler)
var GetSessionHandler = Wrap(handlers.GetSessionHandler)
var GetHistoryHandler = Wrap(handlers.GetHistoryHandler)

// Wrap runs trace injection, authentication and rate limiting in that order
// before next, and counts every response by route and status.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return WrapHandler(next).ServeHTTP
}

func WrapHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := metrics.NewHttpStatusRecorder(w)
		re := processRequest(requestResponseStruct{req: r, writer: rec, logger: logger})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next.ServeHTTP(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(routeLabel(re.req), strconv.Itoa(rec.Status)).Inc()
	})
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("New request received", "path", re.req.URL.Path)
	steps := []func(requestResponseStruct) requestResponseStruct{
		injectTrace,
		authenticate,
		rateLimiter,
	}
	for _, step := range steps {
		re = step(re)
		if re.badRequest.isBadRequest {
			return re
		}
	}
	return re
}

// routeLabel keeps the metric label set small: path parameters (questions in
// /help routes) are replaced by the route pattern.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
