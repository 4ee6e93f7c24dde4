package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

const maxContactBodyBytes = 64 * 1024

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   ContactSender
}

func newContactHandler(contact ContactSender) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// sendContact validates a contact form submission and mails it
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param form body models.ContactFormData true "Contact form"
// @Success 200 {object} models.EmailResult "Message sent"
// @Failure 400 {object} models.EmailResult "Validation failed"
// @Failure 500 {object} models.EmailResult "Mail transport failed"
// @Router /contact [post]
func (h contactHandler) sendContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

		var form models.ContactFormData
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewApiErr(http.StatusRequestEntityTooLarge, "Request too large", "Contact form body is too large"))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError(err))
			return
		}

		result := h.contact.Send(r.Context(), form)

		status := http.StatusOK
		switch result.Outcome {
		case models.EmailInvalid:
			status = http.StatusBadRequest
		case models.EmailFailed:
			status = http.StatusInternalServerError
		}
		h.responder.WriteJSONStatus(w, status, result)
	}
}
