package reports

import (
	"fmt"

	"log-stats/internal/shared/svcerrors"
)

// Report errors
const (
	codeValidationFailed = "RPT_1000"
	codeYearNotFound     = "RPT_1001"

	codeCancelled = "RPT_9000"
)

// errValidationFailed returns an error for invalid report arguments.
func errValidationFailed(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, nil)
}

// errYearNotFound returns an error when the statistics hold no data for year.
func errYearNotFound(year int) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeYearNotFound, fmt.Sprintf("no statistics for year %d", year), nil)
}

// errCancelled returns an error when building a report was interrupted.
func errCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeCancelled, fmt.Errorf("reportCancelled: %w", cause))
}
