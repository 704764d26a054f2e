package http

import (
	"fmt"

	"log-stats/internal/shared/svcerrors"
)

// HTTP errors
const (
	codeInvalidYear = "HTTP_1000"
	codeInvalidTop  = "HTTP_1001"

	codeEncodeFailed = "HTTP_9000"
)

// errInvalidYear returns an error when the year path parameter is not a positive number.
func errInvalidYear(raw string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidYear, fmt.Sprintf("invalid year %q", raw), nil)
}

// errInvalidTop returns an error when the top query parameter is not a positive number.
func errInvalidTop(raw string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidTop, fmt.Sprintf("invalid top %q", raw), nil)
}

func errEncodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeEncodeFailed, fmt.Errorf("encodeResponse: %w", cause))
}
