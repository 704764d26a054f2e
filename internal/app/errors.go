package app

import (
	"errors"
	"fmt"

	"log-stats/internal/models"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/stores"
)

// App errors
const (
	codeInputOpenFailed   = "APP_1000"
	codeBotFileOpenFailed = "APP_1001"
	codeSnapshotNotFound  = "APP_1002"

	codeCacheCorrupted    = "APP_2000"
	codeSnapshotCorrupted = "APP_2001"

	codeInternalStoreFailed = "APP_9000"
	codeInternalServeFailed = "APP_9001"
)

// errInputOpenFailed returns an error when the configured access log cannot be opened.
func errInputOpenFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInputOpenFailed, fmt.Sprintf("cannot open input %q", path), cause)
}

// errBotFileOpenFailed returns an error when the configured bot IP list cannot be read.
func errBotFileOpenFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBotFileOpenFailed, fmt.Sprintf("cannot read bot ip file %q", path), cause)
}

func errServeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalServeFailed, fmt.Errorf("serveFailed: %w", cause))
}

// storeError classifies an error of the cache or snapshot stores.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := svcerrors.AsServiceError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, stores.ErrCacheCorrupted), errors.Is(err, models.ErrDailyDataOutOfOrder):
		return svcerrors.NewDataCorruptionError(codeCacheCorrupted, "log cache corrupted", err)
	case errors.Is(err, stores.ErrSnapshotCorrupted):
		return svcerrors.NewDataCorruptionError(codeSnapshotCorrupted, "snapshot corrupted", err)
	case errors.Is(err, stores.ErrSnapshotNotFound):
		return svcerrors.NewNotFoundError(codeSnapshotNotFound, "snapshot not found", err)
	default:
		return svcerrors.NewInternalError(codeInternalStoreFailed, fmt.Errorf("storeFailed: %w", err))
	}
}
