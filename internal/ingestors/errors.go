package ingestors

import (
	"fmt"

	"log-stats/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed = "ING_1000"

	codeInternalInputReadFailed = "ING_9000"
)

// errValidationFailed returns an error for invalid ingestion arguments.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalInputReadFailed returns an error when the input stream cannot be read.
func errInternalInputReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalInputReadFailed, fmt.Errorf("inputReadFailed: %w", cause))
}
