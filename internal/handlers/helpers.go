package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response in the API wire format.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]interface{}{
		"error": message,
	})
}

// DecodeBody decodes the request body into a generic map so validators
// can inspect raw field types. Returns false after writing a 400 when
// the body is not valid JSON; an empty body yields an empty map.
func DecodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	body := map[string]interface{}{}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	return body, true
}

// isTruthy mirrors the presence semantics the validators use: nil,
// empty string, false and numeric zero all count as absent.
func isTruthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}
