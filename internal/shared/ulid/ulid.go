package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewRequestID returns a sortable identifier for an HTTP request.
var NewRequestID = func() string {
	return ulid.Make().String()
}

// NewRunID returns a sortable identifier for one pipeline run. Log lines of a run share it.
var NewRunID = func() string {
	return ulid.Make().String()
}
