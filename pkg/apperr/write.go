package apperr

import (
	"encoding/json"
	"net/http"
)

// Write renders e as the JSON error body with its status.
func Write(w http.ResponseWriter, requestID string, e *Error) {
	body, _ := json.Marshal(map[string]interface{}{"error": e.Details(requestID)})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_, _ = w.Write(body)
}
