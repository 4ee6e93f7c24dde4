package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/services"
)

type utilsHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newUtilsHandler() utilsHandler {
	logger := log.With().Str("handlerName", "utilsHandler").Logger()

	return utilsHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

type formattedDate struct {
	Formatted string `json:"formatted"`
}

// formatDate renders a date as "Jan 2006", or "Present" for the literal null
// @Summary Format an experience date
// @Tags Utils
// @Produce json
// @Param date path string true "Date or null"
// @Success 200 {object} dataResponse "Formatted date"
// @Failure 500 {object} ErrorResponse "Failed to format date"
// @Router /utils/format-date/{date} [get]
func (h utilsHandler) formatDate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formatted, err := services.FormatExpDate(chi.URLParam(r, "date"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to format date", err.Error(), err))
			return
		}

		h.responder.WriteData(w, formattedDate{Formatted: formatted})
	}
}
