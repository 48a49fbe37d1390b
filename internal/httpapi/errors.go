package httpapi

import (
	"encoding/json"
	"net/http"

	"textgend/pkg/types"
)

// HTTPError lets the service layer attach an HTTP status to an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes the shared error envelope. The status line is already
// sent when encoding runs, so an encode failure can only be logged.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status}); err != nil {
		zlog.Error().Err(err).Int("status", status).Msg("write error response")
	}
}
