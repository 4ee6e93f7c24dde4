package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
)

type experienceHandler struct {
	responder   Responder
	logger      zerolog.Logger
	experiences ExperienceReader
}

func newExperienceHandler(experiences ExperienceReader) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		experiences: experiences,
	}
}

// getAllExperiences lists every experience, current positions first
// @Summary Get all experiences
// @Tags Experiences
// @Produce json
// @Success 200 {object} listResponse "Experiences with count"
// @Failure 500 {object} ErrorResponse "Failed to fetch experiences"
// @Router /experiences [get]
func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experiences.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteList(w, len(experiences), experiences)
	}
}

// getExperience retrieves a single experience by its stored id
// @Summary Get experience
// @Tags Experiences
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} dataResponse "Experience"
// @Failure 404 {object} ErrorResponse "Experience not found"
// @Failure 500 {object} ErrorResponse "Failed to fetch experience"
// @Router /experiences/{id} [get]
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		experience, err := h.experiences.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if experience == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Experience not found", "No experience found with the provided ID"))
			return
		}

		h.responder.WriteData(w, experience)
	}
}
