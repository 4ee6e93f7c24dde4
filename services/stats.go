package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

// Present is shown in place of an end date for ongoing positions.
const Present = "Present"

type StatsService struct {
	experiences ExperienceStore
	now         func() time.Time
	logger      zerolog.Logger
}

func NewStatsService(experiences ExperienceStore) *StatsService {
	return &StatsService{
		experiences: experiences,
		now:         time.Now,
		logger:      log.With().Str("service", "stats").Logger(),
	}
}

// GetStats aggregates the experience collection into portfolio counters.
func (s *StatsService) GetStats(ctx context.Context) (*models.PortfolioStats, error) {
	docs, err := s.experiences.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error calculating stats")
		return nil, errs.NewDatabaseError("Failed to fetch statistics", err)
	}

	now := s.now().UTC()
	stats := &models.PortfolioStats{
		TotalExperience: "0.0",
		TotalCompanies:  len(docs),
		LastUpdated:     models.FormatISO(now),
	}

	technologies := make(map[string]struct{})
	var earliest, latest time.Time
	for _, doc := range docs {
		exp := models.ParseExperience(doc)

		stats.TotalProjects += exp.ProjectCount()
		for _, tech := range exp.Technologies {
			technologies[tech] = struct{}{}
		}

		if start, ok := exp.StartTime(); ok && (earliest.IsZero() || start.Before(earliest)) {
			earliest = start
		}

		if exp.IsCurrent() {
			stats.CurrentPosition = true
			continue
		}
		// Unparseable end dates do not move the span.
		if end, ok := exp.EndTime(); ok && end.After(latest) {
			latest = end
		}
	}
	stats.TotalTechnologies = len(technologies)

	if stats.CurrentPosition && now.After(latest) {
		latest = now
	}
	if !earliest.IsZero() {
		stats.TotalExperience = CalculateDuration(truncateDay(earliest), truncateDay(latest))
	}
	return stats, nil
}

// CalculateDuration returns the whole-month span between start and end in
// years, with one decimal. A day-of-month earlier in end than in start borrows
// a month. Spans under a month yield "0.0".
func CalculateDuration(start, end time.Time) string {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	total := years*12 + months
	if total <= 0 {
		return "0.0"
	}
	// Round half up: 3 months is "0.3".
	rounded := math.Floor(float64(total)/12*10+0.5) / 10
	return strconv.FormatFloat(rounded, 'f', 1, 64)
}

// FormatExpDate renders a date as "Jan 2006". An empty value or the literal
// "null" means the position is ongoing.
func FormatExpDate(date string) (string, error) {
	if date == "" || date == "null" {
		return Present, nil
	}
	t, ok := models.ParseDate(date)
	if !ok {
		return "", fmt.Errorf("%w: unparseable date %q", errs.ErrBadRequest, date)
	}
	return t.Format("Jan 2006"), nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
