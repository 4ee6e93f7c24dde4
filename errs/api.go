package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error sentinel values
var (
	ErrBadRequest = errors.New("malformed request")
	ErrInternal   = errors.New("internal server error")
)

// ApiErr is an error that knows how it should be rendered to a client.
// Title becomes the envelope's "error" field and Message its "message" field.
// Cause is only ever logged.
type ApiErr struct {
	StatusCode int
	Title      string
	Message    string
	RetryAfter int
	Cause      error
	err        error
}

func NewApiErr(statusCode int, title, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Title:      title,
		Message:    message,
		err:        errors.New(title),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Title != "" {
		return e.Title
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

func NewNotFoundError(title, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, Title: title, Message: message, err: ErrNotFound}
}

func NewInternalError(title, message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, Title: title, Message: message, err: ErrInternal}
}

func NewInternalErrorWithCause(title, message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Title:      title,
		Message:    message,
		Cause:      cause,
		err:        ErrInternal,
	}
}

// StatusCode returns the HTTP status an error maps to, 500 for anything unclassified.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
