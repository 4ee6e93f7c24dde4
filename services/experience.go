package services

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

// ExperienceStore is the read side of the companies collection.
type ExperienceStore interface {
	FindAll(ctx context.Context) ([]models.Document, error)
	FindByID(ctx context.Context, id string) (models.Document, error)
	Count(ctx context.Context) (int64, error)
}

type ExperienceService struct {
	repo   ExperienceStore
	logger zerolog.Logger
}

func NewExperienceService(repo ExperienceStore) *ExperienceService {
	return &ExperienceService{
		repo:   repo,
		logger: log.With().Str("service", "experience").Logger(),
	}
}

// ListAll returns every experience, current positions first.
func (s *ExperienceService) ListAll(ctx context.Context) ([]models.Experience, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error fetching experiences")
		return nil, errs.NewDatabaseError("Failed to fetch experiences", err)
	}

	experiences := make([]models.Experience, 0, len(docs))
	for _, doc := range docs {
		experiences = append(experiences, models.ParseExperience(doc))
	}
	SortExperiences(experiences)
	return experiences, nil
}

// GetByID returns nil without an error when no record has that id.
func (s *ExperienceService) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("error fetching experience")
		return nil, errs.NewDatabaseError("Failed to fetch experience", err)
	}

	exp := models.ParseExperience(doc)
	return &exp, nil
}

func (s *ExperienceService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error counting experiences")
		return 0, errs.NewDatabaseError("Failed to count experiences", err)
	}
	return n, nil
}

// SortExperiences orders current positions before past ones. Current positions
// run oldest start first, past positions newest start first.
func SortExperiences(list []models.Experience) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.IsCurrent() != b.IsCurrent() {
			return a.IsCurrent()
		}
		aStart, _ := a.StartTime()
		bStart, _ := b.StartTime()
		if a.IsCurrent() {
			return aStart.Before(bStart)
		}
		return aStart.After(bStart)
	})
}
