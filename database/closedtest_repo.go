package database

import (
	"context"
	"errors"
	"time"

	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// activeFilter matches records whose isActive is anything but false or "false",
// including documents without the field.
var activeFilter = bson.M{"isActive": bson.M{"$nin": bson.A{false, "false"}}}

type ClosedTestRepo struct {
	provider *Provider
	timeout  time.Duration
}

func NewClosedTestRepo(provider *Provider, timeout time.Duration) *ClosedTestRepo {
	return &ClosedTestRepo{provider: provider, timeout: timeout}
}

func (r *ClosedTestRepo) collection(ctx context.Context) (*mongo.Database, *mongo.Collection, error) {
	db, err := r.provider.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Collection(config.CollectionClosedTests), nil
}

// FindAll returns every closed test document. Filtering on isActive happens
// after normalisation in the service.
func (r *ClosedTestRepo) FindAll(ctx context.Context) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, coll, err := r.collection(ctx)
	if err != nil {
		return nil, classify("find closed tests", err)
	}
	defer r.provider.Release(db)

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, classify("find closed tests", err)
	}

	docs := []models.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify("decode closed tests", err)
	}
	return docs, nil
}

// FindByID tries the ObjectID form first when id looks like one, then falls
// back to matching the raw string.
func (r *ClosedTestRepo) FindByID(ctx context.Context, id string) (models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, coll, err := r.collection(ctx)
	if err != nil {
		return nil, classify("find closed test", err)
	}
	defer r.provider.Release(db)

	if primitive.IsValidObjectID(id) {
		oid, _ := primitive.ObjectIDFromHex(id)
		doc, err := findOne(ctx, coll, bson.M{"_id": oid})
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, classify("find closed test", err)
		}
	}

	doc, err := findOne(ctx, coll, bson.M{"_id": id})
	if err != nil {
		return nil, classify("find closed test", err)
	}
	return doc, nil
}

func (r *ClosedTestRepo) FindByPackageName(ctx context.Context, packageName string) (models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, coll, err := r.collection(ctx)
	if err != nil {
		return nil, classify("find closed test by package", err)
	}
	defer r.provider.Release(db)

	doc, err := findOne(ctx, coll, bson.M{"packageName": packageName})
	if err != nil {
		return nil, classify("find closed test by package", err)
	}
	return doc, nil
}

// CountActive counts documents using the same notion of active as the listing.
func (r *ClosedTestRepo) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, coll, err := r.collection(ctx)
	if err != nil {
		return 0, classify("count closed tests", err)
	}
	defer r.provider.Release(db)

	n, err := coll.CountDocuments(ctx, activeFilter)
	if err != nil {
		return 0, classify("count closed tests", err)
	}
	return n, nil
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M) (models.Document, error) {
	var doc models.Document
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}
