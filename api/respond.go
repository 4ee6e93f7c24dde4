package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data with a 200 status.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	// Marshal first so an encoding failure can still produce a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteData(w http.ResponseWriter, data any) {
	r.WriteJSON(w, dataResponse{Success: true, Data: data})
}

func (r Responder) WriteList(w http.ResponseWriter, count int, data any) {
	r.WriteJSON(w, listResponse{Success: true, Count: count, Data: data})
}

// WriteError renders err as the failure envelope. Errors that are not an
// *errs.ApiErr are logged and reported as a generic 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   config.MsgInternalError,
			Message: config.MsgUnexpectedError,
		})
		return
	}

	event := r.logger.Warn()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		event = r.logger.Error()
	}
	event.Int("status", apiErr.StatusCode).Str("error", apiErr.GetFullError()).Msg(apiErr.Message)

	if apiErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(apiErr.RetryAfter))
	}
	r.WriteJSONStatus(w, apiErr.StatusCode, ErrorResponse{
		Success:    false,
		Error:      apiErr.Error(),
		Message:    apiErr.Message,
		RetryAfter: apiErr.RetryAfter,
	})
}
