package handlers

import (
	"encoding/json"
	"net/http"
)

// parseJSON decodes a request body into a request struct.
// Unknown fields are rejected so typos surface as 400s instead of silently
// dropped settings.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, err
	}
	return req, nil
}
