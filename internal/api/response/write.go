package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// internalError is written when a response body cannot be encoded
const internalError = `{"code":"INTERNAL_SERVER_ERROR","message":"Internal server error"}`

// JSON encodes data and writes it with the given status. Encoding happens
// before the status line so an unencodable value still yields a clean 500.
// Responses are marked no-store.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status, body = http.StatusInternalServerError, []byte(internalError)
	}
	body = append(body, '\n')

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusNoContent)
}
