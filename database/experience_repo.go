package database

import (
	"context"
	"time"

	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

type ExperienceRepo struct {
	provider *Provider
	timeout  time.Duration
}

func NewExperienceRepo(provider *Provider, timeout time.Duration) *ExperienceRepo {
	return &ExperienceRepo{provider: provider, timeout: timeout}
}

// FindAll returns every company document, unsorted.
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, err := r.provider.Acquire(ctx)
	if err != nil {
		return nil, classify("find experiences", err)
	}
	defer r.provider.Release(db)

	cur, err := db.Collection(config.CollectionCompanies).Find(ctx, bson.M{})
	if err != nil {
		return nil, classify("find experiences", err)
	}

	docs := []models.Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify("decode experiences", err)
	}
	return docs, nil
}

// FindByID matches _id as stored, without converting the input to an ObjectID.
func (r *ExperienceRepo) FindByID(ctx context.Context, id string) (models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, err := r.provider.Acquire(ctx)
	if err != nil {
		return nil, classify("find experience", err)
	}
	defer r.provider.Release(db)

	var doc models.Document
	err = db.Collection(config.CollectionCompanies).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, classify("find experience", err)
	}
	return doc, nil
}

func (r *ExperienceRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	db, err := r.provider.Acquire(ctx)
	if err != nil {
		return 0, classify("count experiences", err)
	}
	defer r.provider.Release(db)

	n, err := db.Collection(config.CollectionCompanies).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, classify("count experiences", err)
	}
	return n, nil
}
