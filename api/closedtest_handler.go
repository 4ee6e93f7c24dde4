package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
)

type closedTestHandler struct {
	responder   Responder
	logger      zerolog.Logger
	closedTests ClosedTestReader
}

func newClosedTestHandler(closedTests ClosedTestReader) closedTestHandler {
	logger := log.With().Str("handlerName", "closedTestHandler").Logger()

	return closedTestHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		closedTests: closedTests,
	}
}

// getAllClosedTests lists active closed tests
// @Summary Get closed tests
// @Tags ClosedTests
// @Produce json
// @Success 200 {object} listResponse "Active closed tests with count"
// @Failure 500 {object} ErrorResponse "Failed to fetch closed tests"
// @Router /closed-tests [get]
func (h closedTestHandler) getAllClosedTests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tests, err := h.closedTests.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteList(w, len(tests), tests)
	}
}

// getClosedTest retrieves a closed test by ObjectID or raw string id
// @Summary Get closed test
// @Tags ClosedTests
// @Produce json
// @Param id path string true "Closed test ID"
// @Success 200 {object} dataResponse "Closed test"
// @Failure 404 {object} ErrorResponse "Closed test not found"
// @Failure 500 {object} ErrorResponse "Failed to fetch closed test"
// @Router /closed-tests/{id} [get]
func (h closedTestHandler) getClosedTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		test, err := h.closedTests.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if test == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Closed test not found", "No closed test found with the provided ID"))
			return
		}

		h.responder.WriteData(w, test)
	}
}

type testingStatusResponse struct {
	Success           bool `json:"success"`
	IsInClosedTesting bool `json:"isInClosedTesting"`
	AppData           any  `json:"appData"`
}

// checkTestingStatus reports whether a package is listed as a closed test
// @Summary Check closed testing status
// @Tags ClosedTests
// @Produce json
// @Param packageName path string true "Android package name"
// @Success 200 {object} testingStatusResponse "Testing status"
// @Failure 500 {object} ErrorResponse "Failed to check testing status"
// @Router /closed-tests/check/{packageName} [get]
func (h closedTestHandler) checkTestingStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.closedTests.CheckTestingStatus(r.Context(), chi.URLParam(r, "packageName"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, testingStatusResponse{
			Success:           true,
			IsInClosedTesting: status.IsInClosedTesting,
			AppData:           status.AppData,
		})
	}
}
