package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeActive(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{true, true},
		{"true", true},
		{"", true},
		{nil, true},
		{1, true},
		{false, false},
		{"false", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeActive(tc.in), "input %#v", tc.in)
	}
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stored := time.Date(2023, 3, 14, 9, 30, 0, 0, time.UTC)

	cases := map[string]any{
		"driver date":      primitive.NewDateTimeFromTime(stored),
		"iso string":       "2023-03-14T09:30:00Z",
		"extended json":    bson.M{"$date": "2023-03-14T09:30:00Z"},
		"number long":      bson.M{"$date": bson.M{"$numberLong": "1678786200000"}},
		"epoch millis":     int64(1678786200000),
		"extended ts":      bson.M{"$timestamp": bson.M{"t": int64(1678786200), "i": int64(1)}},
		"native timestamp": primitive.Timestamp{T: 1678786200, I: 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "2023-03-14T09:30:00.000Z", NormalizeDate(in, now))
		})
	}

	assert.Equal(t, "2024-05-01T12:00:00.000Z", NormalizeDate("not a date", now))
	assert.Equal(t, "2024-05-01T12:00:00.000Z", NormalizeDate(nil, now))
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2020-01-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseDate("Jan 2021")
	require.True(t, ok)
	assert.Equal(t, time.January, got.Month())

	_, ok = ParseDate("  ")
	assert.False(t, ok)
}

func TestParseExperience(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := Document{
		"_id":           oid,
		"companyName":   "Acme",
		"position":      "Engineer",
		"workStart":     "2020-01-15",
		"workEnd":       "null",
		"technologies":  primitive.A{"Go", "Kotlin", nil},
		"playStoreApps": primitive.A{bson.M{"packageName": "com.acme.app", "_id": oid}},
		"webApps":       primitive.A{"https://acme.dev"},
	}

	exp := ParseExperience(doc)
	assert.Equal(t, oid.Hex(), exp.ID)
	assert.Equal(t, "Acme", exp.CompanyName)
	assert.True(t, exp.IsCurrent())
	assert.Equal(t, []string{"Go", "Kotlin"}, exp.Technologies)
	assert.Equal(t, 2, exp.ProjectCount())
	assert.Equal(t, oid.Hex(), exp.PlayStoreApps[0].(map[string]any)["_id"])

	start, ok := exp.StartTime()
	require.True(t, ok)
	assert.Equal(t, 2020, start.Year())
}

func TestParseExperienceEnded(t *testing.T) {
	exp := ParseExperience(Document{"_id": "abc", "workStart": "2019-02-01", "workEnd": "2020-02-01"})
	require.False(t, exp.IsCurrent())
	end, ok := exp.EndTime()
	require.True(t, ok)
	assert.Equal(t, 2020, end.Year())
	assert.NotNil(t, exp.Technologies)
	assert.Equal(t, 0, exp.ProjectCount())
}

func TestParseClosedTest(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ct := ParseClosedTest(Document{
		"_id":         primitive.NewObjectID(),
		"appName":     "Notes",
		"packageName": "com.example.notes",
		"isActive":    "false",
		"createdAt":   bson.M{"$date": "2024-01-02T00:00:00Z"},
	}, now)

	assert.False(t, ct.IsActive)
	assert.Equal(t, "2024-01-02T00:00:00.000Z", ct.CreatedAt)
	assert.Equal(t, "2024-05-01T00:00:00.000Z", ct.UpdatedAt)
}
