package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// WriteError renders an AppError as a JSON response with its mapped status
// code.
func WriteError(w http.ResponseWriter, r *http.Request, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode())
	json.NewEncoder(w).Encode(errors.ToErrorResponse(err, r.Header.Get("X-Request-ID")))
}
