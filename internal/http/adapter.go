package http

import (
	"net/http"

	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/svcerrors"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	RequestID        string `json:"requestId"`
	ErrorCategory    string `json:"errorCategory"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// errorHandlingAdapter turns the error of an AppHttpHandler into an ErrorResponse.
// Errors that are not a ServiceError are reported as undefined internal errors.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := httpHandler.Handle(w, r)
		if err == nil {
			return
		}

		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}
		if svcErr.IsInternalError() {
			loggers.Ctx(r.Context()).Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Str("errorCategory", svcErr.Category).
				Msg("handler failed")
		}

		writeErrorResponse(w, r, svcErr)
	}
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Int(loggers.FieldHttpStatus, svcErr.HttpStatusCode).
		Str("errorMessage", svcErr.Message).
		Msg("error response")

	body := ErrorResponse{
		RequestID:        requestID(r),
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
	}
	if err := writeJSON(w, svcErr.HttpStatusCode, body); err != nil {
		// an ErrorResponse always encodes
		w.WriteHeader(svcErr.HttpStatusCode)
	}
}
