package database

import (
	"github.com/sumitcodes/portfolio-backend/config"
)

type Database struct {
	provider       *Provider
	experienceRepo *ExperienceRepo
	closedTestRepo *ClosedTestRepo
}

// New wires every repository to the shared provider.
func New(cfg config.MongoConfig) Database {
	provider := NewProvider(cfg)
	return Database{
		provider:       provider,
		experienceRepo: NewExperienceRepo(provider, cfg.QueryTimeout),
		closedTestRepo: NewClosedTestRepo(provider, cfg.QueryTimeout),
	}
}

// Accessor methods for each repository

func (d Database) Provider() *Provider {
	return d.provider
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) ClosedTestRepo() *ClosedTestRepo {
	return d.closedTestRepo
}
