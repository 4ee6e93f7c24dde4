package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const (
	closedTestsNS = config.DatabaseName + "." + config.CollectionClosedTests
	companiesNS   = config.DatabaseName + "." + config.CollectionCompanies
)

// mockProvider hands the mock deployment's client to a Provider as if it had
// just been pinged.
func mockProvider(mt *mtest.T) *Provider {
	p := NewProvider(config.MongoConfig{Database: config.DatabaseName, QueryTimeout: 5 * time.Second})
	p.client = mt.Client
	p.checkedAt = time.Now()
	return p
}

func filterID(mt *mtest.T) bson.RawValue {
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "find", evt.CommandName)
	return evt.Command.Lookup("filter", "_id")
}

func TestClosedTestRepo_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("object id hit", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: oid}, {Key: "appName", Value: "Notes"}}))

		doc, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid, doc["_id"])

		id := filterID(mt)
		assert.Equal(mt, bson.TypeObjectID, id.Type)
		assert.Equal(mt, oid, id.ObjectID())
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("object id miss falls back to string id", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		hex := "64b7f0c2a1b2c3d4e5f60718"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: hex}, {Key: "appName", Value: "Legacy"}}),
		)

		doc, err := repo.FindByID(context.Background(), hex)
		require.NoError(mt, err)
		assert.Equal(mt, hex, doc["_id"])

		first := filterID(mt)
		assert.Equal(mt, bson.TypeObjectID, first.Type)
		second := filterID(mt)
		assert.Equal(mt, bson.TypeString, second.Type)
		assert.Equal(mt, hex, second.StringValue())
	})

	mt.Run("non hex id queries the raw string only", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "notes-app"}}))

		doc, err := repo.FindByID(context.Background(), "notes-app")
		require.NoError(mt, err)
		assert.Equal(mt, "notes-app", doc["_id"])

		id := filterID(mt)
		assert.Equal(mt, bson.TypeString, id.Type)
		assert.Equal(mt, "notes-app", id.StringValue())
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("missing id is not found", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("command failure is a query error", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad filter",
		}))

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, errs.ErrDatabaseQuery)
	})
}

func TestClosedTestRepo_CountActiveExcludesOnlyExplicitFalse(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.CountActive(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "aggregate", evt.CommandName)

		stages, err := evt.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		require.NotEmpty(mt, stages)

		excluded, err := stages[0].Document().Lookup("$match", "isActive", "$nin").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, excluded, 2)
		assert.Equal(mt, bson.TypeBoolean, excluded[0].Type)
		assert.False(mt, excluded[0].Boolean())
		assert.Equal(mt, bson.TypeString, excluded[1].Type)
		assert.Equal(mt, "false", excluded[1].StringValue())
	})
}

func TestClosedTestRepo_FindByPackageName(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("exact match", func(mt *mtest.T) {
		repo := NewClosedTestRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, closedTestsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "packageName", Value: "codes.sumit.notes"}}))

		doc, err := repo.FindByPackageName(context.Background(), "codes.sumit.notes")
		require.NoError(mt, err)
		assert.Equal(mt, "codes.sumit.notes", doc["packageName"])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "codes.sumit.notes", evt.Command.Lookup("filter", "packageName").StringValue())
	})
}

func TestExperienceRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id keeps hex ids as strings", func(mt *mtest.T) {
		repo := NewExperienceRepo(mockProvider(mt), 5*time.Second)
		hex := "64b7f0c2a1b2c3d4e5f60718"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, companiesNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: hex}, {Key: "companyName", Value: "Acme"}}))

		doc, err := repo.FindByID(context.Background(), hex)
		require.NoError(mt, err)
		assert.Equal(mt, "Acme", doc["companyName"])

		id := filterID(mt)
		assert.Equal(mt, bson.TypeString, id.Type)
		assert.Equal(mt, hex, id.StringValue())
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		repo := NewExperienceRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, companiesNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("find all", func(mt *mtest.T) {
		repo := NewExperienceRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, companiesNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "a"}},
			bson.D{{Key: "_id", Value: "b"}},
		))

		docs, err := repo.FindAll(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, docs, 2)
	})

	mt.Run("count is unfiltered", func(mt *mtest.T) {
		repo := NewExperienceRepo(mockProvider(mt), 5*time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, companiesNS, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(4)}}))

		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		stages, err := evt.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		match, err := stages[0].Document().Lookup("$match").Document().Elements()
		require.NoError(mt, err)
		assert.Empty(mt, match)
	})
}
