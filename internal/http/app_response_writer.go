package http

import (
	"net/http"

	"log-stats/internal/shared/metrics"
	"log-stats/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter records the status and the service error of a response so the
// metrics and logging middleware can report them after the handler returns.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return metrics.ValueNoError
}

// StatusOrOK is the written status, 200 when the handler wrote nothing explicit.
func (w *appResponseWriter) StatusOrOK() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}

// responseDetails reads status and error code from w when the app writer wraps it.
func responseDetails(w http.ResponseWriter) (int, string) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		return appWriter.StatusOrOK(), appWriter.ErrorCode()
	}
	return http.StatusOK, metrics.ValueNoError
}
