package config

import "time"

// Rate limit categories. Every rate-limited route belongs to exactly one.
const (
	RouteContact     = "contact"
	RouteAppStore    = "appStore"
	RouteExperiences = "experiences"
	RouteClosedTests = "closedTests"
	RouteStats       = "stats"
	RouteDefault     = "default"
)

type RateLimit struct {
	Window      time.Duration
	MaxRequests int
}

var RateLimits = map[string]RateLimit{
	RouteContact:     {Window: time.Minute, MaxRequests: 5},
	RouteAppStore:    {Window: time.Minute, MaxRequests: 100},
	RouteExperiences: {Window: time.Minute, MaxRequests: 1000},
	RouteClosedTests: {Window: time.Minute, MaxRequests: 200},
	RouteStats:       {Window: time.Minute, MaxRequests: 500},
	RouteDefault:     {Window: time.Minute, MaxRequests: 100},
}

// RateLimitFor falls back to the default rule for unknown categories.
func RateLimitFor(category string) RateLimit {
	if rl, ok := RateLimits[category]; ok {
		return rl
	}
	return RateLimits[RouteDefault]
}

var AllowedOrigins = []string{
	"https://sumit.codes",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

const (
	DatabaseName          = "portfolio"
	CollectionCompanies   = "companies"
	CollectionClosedTests = "closed_tests"

	ContactRecipient = "hi@sumit.codes"
)

// User facing messages.
const (
	MsgEmailSent        = "Your message has been sent successfully! I'll get back to you soon."
	MsgEmailFailed      = "Sorry, there was an error sending your message. Please try again or contact me directly."
	MsgValidationFailed = "Validation failed"
	MsgInternalError    = "Internal server error"
	MsgUnexpectedError  = "An unexpected error occurred"
)
