package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type appHandler struct {
	responder Responder
	logger    zerolog.Logger
	apps      AppLookup
}

func newAppHandler(apps AppLookup) appHandler {
	logger := log.With().Str("handlerName", "appHandler").Logger()

	return appHandler{
		responder: NewResponder(logger),
		logger:    logger,
		apps:      apps,
	}
}

// getAppStoreApp proxies the iTunes lookup API
// @Summary Get App Store listing
// @Tags Apps
// @Produce json
// @Param id path string true "Numeric App Store id"
// @Success 200 {object} dataResponse "App listing"
// @Failure 500 {object} ErrorResponse "Failed to fetch App Store data"
// @Router /apps/app-store/{id} [get]
func (h appHandler) getAppStoreApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := h.apps.GetAppStoreApp(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, app)
	}
}

// getPlayStoreApp is withdrawn and always answers 410
// @Summary Get Play Store listing (withdrawn)
// @Tags Apps
// @Produce json
// @Param id path string true "Package name"
// @Failure 410 {object} ErrorResponse "Play Store scraping is deprecated"
// @Router /apps/play-store/{id} [get]
func (h appHandler) getPlayStoreApp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := h.apps.GetPlayStoreApp(r.Context(), chi.URLParam(r, "id"))
		h.responder.WriteError(w, err)
	}
}
