package api

import (
	"context"

	"github.com/sumitcodes/portfolio-backend/models"
	"github.com/sumitcodes/portfolio-backend/ratelimit"
)

type HealthChecker interface {
	Connect(ctx context.Context) error
	IsConnected(ctx context.Context) bool
}

type ExperienceReader interface {
	ListAll(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id string) (*models.Experience, error)
}

type ClosedTestReader interface {
	ListAll(ctx context.Context) ([]models.ClosedTest, error)
	GetByID(ctx context.Context, id string) (*models.ClosedTest, error)
	CheckTestingStatus(ctx context.Context, packageName string) (models.TestingStatus, error)
}

type AppLookup interface {
	GetAppStoreApp(ctx context.Context, id string) (*models.AppStoreApp, error)
	GetPlayStoreApp(ctx context.Context, id string) (*models.AppStoreApp, error)
}

type ContactSender interface {
	Send(ctx context.Context, form models.ContactFormData) models.EmailResult
}

type StatsReader interface {
	GetStats(ctx context.Context) (*models.PortfolioStats, error)
}

// Services groups everything the router calls into. A nil Limiter disables
// rate limiting and a nil Metrics disables instrumentation.
type Services struct {
	Health      HealthChecker
	Experiences ExperienceReader
	ClosedTests ClosedTestReader
	Apps        AppLookup
	Contact     ContactSender
	Stats       StatsReader
	Limiter     *ratelimit.Limiter
	Metrics     Metrics
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler     healthHandler
	experienceHandler experienceHandler
	appHandler        appHandler
	closedTestHandler closedTestHandler
	contactHandler    contactHandler
	statsHandler      statsHandler
	utilsHandler      utilsHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(s Services) *routeHandlers {
	return &routeHandlers{
		healthHandler:     newHealthHandler(s.Health),
		experienceHandler: newExperienceHandler(s.Experiences),
		appHandler:        newAppHandler(s.Apps),
		closedTestHandler: newClosedTestHandler(s.ClosedTests),
		contactHandler:    newContactHandler(s.Contact),
		statsHandler:      newStatsHandler(s.Stats),
		utilsHandler:      newUtilsHandler(),
	}
}
