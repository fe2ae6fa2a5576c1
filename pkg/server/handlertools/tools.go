package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/nerlens/nerlens/internal"
	"github.com/nerlens/nerlens/pkg/models"
)

var log = internal.GetLogger()

const internalServerError = "Internal server error"

// ErrorResponse is the body of every error returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
// Malformed bodies are reported as validation errors, an oversized body keeps
// its *http.MaxBytesError.
func DecodeJSON(r *http.Request, data interface{}) error {
	err := json.NewDecoder(r.Body).Decode(data)
	if err == nil {
		return nil
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return models.NewValidationError(models.ErrNoTextProvided)
	}
	return models.NewValidationError("Invalid JSON body: %s", err)
}

// RenderError renders an error response. Validation errors become 400 with
// their message, inference errors become 500 with the failure in details and
// an oversized body becomes 413. Any other error is rendered with status.
func RenderError(w http.ResponseWriter, err error, status int) {
	resp := ErrorResponse{Error: err.Error()}

	var (
		maxBytesErr *http.MaxBytesError
		validation  *models.ValidationError
		inference   *models.InferenceError
	)
	switch {
	case errors.As(err, &maxBytesErr):
		status = http.StatusRequestEntityTooLarge
		resp.Error = fmt.Sprintf(
			"request body too large, limit is %s", humanize.Bytes(uint64(maxBytesErr.Limit)),
		)
	case errors.As(err, &validation):
		status = http.StatusBadRequest
		resp.Error = validation.Message
	case errors.As(err, &inference):
		status = http.StatusInternalServerError
		resp = ErrorResponse{Error: internalServerError, Details: inference.Detail}
	}

	if status >= http.StatusInternalServerError {
		log.Error(err)
	} else {
		// Don't log client errors above debug
		log.Debug(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		log.Errorf("error encoding error response: %v", encErr)
	}
}
