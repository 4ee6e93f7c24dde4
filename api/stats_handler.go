package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type statsHandler struct {
	responder Responder
	logger    zerolog.Logger
	stats     StatsReader
}

func newStatsHandler(stats StatsReader) statsHandler {
	logger := log.With().Str("handlerName", "statsHandler").Logger()

	return statsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		stats:     stats,
	}
}

// @Summary Get portfolio statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} dataResponse "Aggregated statistics"
// @Failure 500 {object} ErrorResponse "Failed to fetch statistics"
// @Router /stats [get]
func (h statsHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.stats.GetStats(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, stats)
	}
}
