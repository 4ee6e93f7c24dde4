package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDuration(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"day underflow borrows a month", date(2020, 1, 15), date(2023, 7, 10), "3.4"},
		{"exact years", date(2020, 3, 1), date(2022, 3, 1), "2.0"},
		{"quarter rounds up", date(2020, 1, 1), date(2020, 4, 1), "0.3"},
		{"under a month", date(2020, 1, 15), date(2020, 2, 14), "0.0"},
		{"same day", date(2020, 1, 15), date(2020, 1, 15), "0.0"},
		{"end before start", date(2021, 1, 1), date(2020, 1, 1), "0.0"},
		{"month wrap", date(2019, 11, 20), date(2020, 2, 21), "0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateDuration(tc.start, tc.end))
		})
	}
}

func TestFormatExpDate(t *testing.T) {
	got, err := FormatExpDate("null")
	require.NoError(t, err)
	assert.Equal(t, Present, got)

	got, err = FormatExpDate("")
	require.NoError(t, err)
	assert.Equal(t, Present, got)

	got, err = FormatExpDate("2023-03-15")
	require.NoError(t, err)
	assert.Equal(t, "Mar 2023", got)

	_, err = FormatExpDate("someday")
	assert.Error(t, err)
}

func TestGetStats(t *testing.T) {
	store := &fakeExperienceStore{docs: []models.Document{
		{
			"_id":           "a",
			"workStart":     "2020-01-15",
			"workEnd":       "2021-06-01",
			"technologies":  primitive.A{"Go", "Kotlin"},
			"playStoreApps": primitive.A{"x", "y"},
			"webApps":       primitive.A{"z"},
		},
		{
			"_id":          "b",
			"workStart":    "2021-07-01",
			"workEnd":      "2023-07-10",
			"technologies": primitive.A{"Go", "Swift"},
			"appStoreApps": primitive.A{"ios"},
		},
	}}
	svc := NewStatsService(store)
	svc.now = func() time.Time { return date(2024, 1, 1) }

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3.4", stats.TotalExperience)
	assert.Equal(t, 2, stats.TotalCompanies)
	assert.Equal(t, 4, stats.TotalProjects)
	assert.Equal(t, 3, stats.TotalTechnologies)
	assert.False(t, stats.CurrentPosition)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", stats.LastUpdated)
}

func TestGetStatsCurrentPositionRunsToNow(t *testing.T) {
	store := &fakeExperienceStore{docs: []models.Document{
		{"_id": "a", "workStart": "2022-01-10", "workEnd": "2022-12-01"},
		{"_id": "b", "workStart": "2023-01-01"},
	}}
	svc := NewStatsService(store)
	svc.now = func() time.Time { return time.Date(2024, 1, 9, 15, 0, 0, 0, time.UTC) }

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.CurrentPosition)
	assert.Equal(t, "1.9", stats.TotalExperience)
}

func TestGetStatsIgnoresUnparseableEndDate(t *testing.T) {
	store := &fakeExperienceStore{docs: []models.Document{
		{"_id": "a", "workStart": "2015-01-01", "workEnd": "2016-01-01"},
		{"_id": "b", "workStart": "2016-02-01", "workEnd": "garbage"},
	}}
	svc := NewStatsService(store)
	svc.now = func() time.Time { return date(2026, 1, 1) }

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.False(t, stats.CurrentPosition)
	assert.Equal(t, "1.0", stats.TotalExperience)
}

func TestGetStatsEmpty(t *testing.T) {
	stats, err := NewStatsService(&fakeExperienceStore{}).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.0", stats.TotalExperience)
	assert.Zero(t, stats.TotalCompanies)
}

func TestGetStatsFailure(t *testing.T) {
	_, err := NewStatsService(&fakeExperienceStore{err: errs.ErrDatabaseQuery}).GetStats(context.Background())
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch statistics", apiErr.Title)
}
