package errs

import (
	"errors"
	"net/http"
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
)

func NewMalformedPayloadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Title:      "Invalid request body",
		Message:    "Request body must be a JSON object",
		Cause:      cause,
		err:        ErrMalformedPayload,
	}
}
