package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
)

// writeJSONError writes the API's {"error": message} body
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
