package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

// setupMiddleware installs the chain outermost first. The recoverer is innermost: a panic
// reaches metrics and the completion log as a 500.
func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

// mwRequestID keeps the caller's request id or assigns one, echoes it in the response and
// puts a logger carrying it into the request context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewRequestID()
				r.Header.Set(headerRequestID, id)
			}
			w.Header().Set(headerRequestID, id)

			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := routePattern(r)
		status, errorCode := responseDetails(w)
		statusLabel := strconv.Itoa(status)

		metricRequestsTotal.WithLabelValues(r.Method, route, statusLabel, errorCode).Inc()
		metricRequestDuration.WithLabelValues(r.Method, route, statusLabel).Observe(time.Since(start).Seconds())
	})
}

func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			status, errorCode := responseDetails(w)
			event := loggers.Ctx(r.Context()).Info()
			if status >= http.StatusInternalServerError {
				event = loggers.Ctx(r.Context()).Warn()
			}
			event = event.
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, status).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds())
			if errorCode != "" {
				event = event.Str(loggers.FieldErrorCode, errorCode)
			}
			event.Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			loggers.Ctx(r.Context()).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("http panic recovered: %v", p)

			panicErr, ok := p.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", p)
			}
			writeErrorResponse(w, r, svcerrors.NewInternalErrorPanic(panicErr))
		}()

		next.ServeHTTP(w, r)
	})
}

// routePattern is the matched chi route, the raw path when nothing matched.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
