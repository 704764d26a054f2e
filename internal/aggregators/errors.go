package aggregators

import (
	"fmt"

	"log-stats/internal/shared/svcerrors"
)

const (
	codeValidationFailed = "AGG_1000"

	codeCancelled = "AGG_9000"
)

// errValidationFailed returns an error for invalid grouping arguments.
func errValidationFailed(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, nil)
}

// errCancelled returns an error when the resolution pass was interrupted.
func errCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeCancelled, fmt.Errorf("resolutionCancelled: %w", cause))
}
