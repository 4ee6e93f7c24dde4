package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

type ClosedTestStore interface {
	FindAll(ctx context.Context) ([]models.Document, error)
	FindByID(ctx context.Context, id string) (models.Document, error)
	FindByPackageName(ctx context.Context, packageName string) (models.Document, error)
	CountActive(ctx context.Context) (int64, error)
}

type ClosedTestService struct {
	repo   ClosedTestStore
	now    func() time.Time
	logger zerolog.Logger
}

func NewClosedTestService(repo ClosedTestStore) *ClosedTestService {
	return &ClosedTestService{
		repo:   repo,
		now:    time.Now,
		logger: log.With().Str("service", "closedTest").Logger(),
	}
}

// ListAll returns the closed tests that are not explicitly deactivated.
func (s *ClosedTestService) ListAll(ctx context.Context) ([]models.ClosedTest, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error fetching closed tests")
		return nil, errs.NewDatabaseError("Failed to fetch closed tests", err)
	}

	now := s.now()
	tests := make([]models.ClosedTest, 0, len(docs))
	for _, doc := range docs {
		test := models.ParseClosedTest(doc, now)
		if !test.IsActive {
			continue
		}
		tests = append(tests, test)
	}
	return tests, nil
}

// GetByID returns nil when neither the ObjectID nor the raw string form matches.
func (s *ClosedTestService) GetByID(ctx context.Context, id string) (*models.ClosedTest, error) {
	doc, err := s.repo.FindByID(ctx, id)
	return s.single(doc, err, "id", id)
}

func (s *ClosedTestService) GetByPackageName(ctx context.Context, packageName string) (*models.ClosedTest, error) {
	doc, err := s.repo.FindByPackageName(ctx, packageName)
	return s.single(doc, err, "packageName", packageName)
}

func (s *ClosedTestService) single(doc models.Document, err error, field, value string) (*models.ClosedTest, error) {
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str(field, value).Msg("error fetching closed test")
		return nil, errs.NewDatabaseError("Failed to fetch closed test", err)
	}

	test := models.ParseClosedTest(doc, s.now())
	return &test, nil
}

// Count counts active closed tests.
func (s *ClosedTestService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.CountActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("error counting closed tests")
		return 0, errs.NewDatabaseError("Failed to count closed tests", err)
	}
	return n, nil
}

// CheckTestingStatus reports a package as in closed testing when it has a
// stored record. Otherwise AppData is an availability stub for the package.
func (s *ClosedTestService) CheckTestingStatus(ctx context.Context, packageName string) (models.TestingStatus, error) {
	doc, err := s.repo.FindByPackageName(ctx, packageName)
	if errors.Is(err, errs.ErrNotFound) {
		return models.TestingStatus{
			IsInClosedTesting: false,
			AppData:           models.PackageAvailability{PackageName: packageName, IsAvailable: false},
		}, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("packageName", packageName).Msg("error checking testing status")
		return models.TestingStatus{}, errs.NewDatabaseError("Failed to check testing status", err)
	}
	return models.TestingStatus{IsInClosedTesting: true, AppData: models.ParseClosedTest(doc, s.now())}, nil
}
