package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        HealthChecker
}

func newHealthHandler(db HealthChecker) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// getHealth reports whether the process can reach MongoDB
// @Summary Health check
// @Description Reconnects to MongoDB when needed and reports the connection state
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Database connected"
// @Failure 503 {object} HealthResponse "Database disconnected or check failed"
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		timestamp := models.FormatISO(time.Now())

		if !h.db.IsConnected(ctx) {
			h.logger.Info().Msg("MongoDB not connected, attempting to connect")
			if err := h.db.Connect(ctx); err != nil {
				h.logger.Error().Err(err).Msg("health check reconnect failed")
				if !errs.IsDatabaseConnection(err) {
					h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, HealthResponse{
						Status:    "error",
						Timestamp: timestamp,
						Error:     "Health check failed",
						Services:  map[string]string{"mongodb": "error"},
					})
					return
				}
			}
		}

		status, state := http.StatusOK, "connected"
		if !h.db.IsConnected(ctx) {
			status, state = http.StatusServiceUnavailable, "disconnected"
		}

		h.responder.WriteJSONStatus(w, status, HealthResponse{
			Status:    "ok",
			Timestamp: timestamp,
			Services:  map[string]string{"mongodb": state},
		})
	}
}
