package http

import (
	"bytes"
	"encoding/json"
	"net/http"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// writeJSON encodes value before touching w, so an encoding failure can still be
// answered with an error response.
func writeJSON(w http.ResponseWriter, status int, value any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(value); err != nil {
		return errEncodeFailed(err)
	}

	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}
