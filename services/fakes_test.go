package services

import (
	"context"
	"sync"

	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/sumitcodes/portfolio-backend/models"
)

type fakeExperienceStore struct {
	docs []models.Document
	err  error
}

func (f *fakeExperienceStore) FindAll(context.Context) ([]models.Document, error) {
	return f.docs, f.err
}

func (f *fakeExperienceStore) FindByID(_ context.Context, id string) (models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, doc := range f.docs {
		if models.IDString(doc["_id"]) == id {
			return doc, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeExperienceStore) Count(context.Context) (int64, error) {
	return int64(len(f.docs)), f.err
}

type fakeClosedTestStore struct {
	docs []models.Document
	err  error
}

func (f *fakeClosedTestStore) FindAll(context.Context) ([]models.Document, error) {
	return f.docs, f.err
}

func (f *fakeClosedTestStore) find(key, value string) (models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, doc := range f.docs {
		if models.IDString(doc[key]) == value {
			return doc, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeClosedTestStore) FindByID(_ context.Context, id string) (models.Document, error) {
	return f.find("_id", id)
}

func (f *fakeClosedTestStore) FindByPackageName(_ context.Context, name string) (models.Document, error) {
	return f.find("packageName", name)
}

func (f *fakeClosedTestStore) CountActive(context.Context) (int64, error) {
	var n int64
	for _, doc := range f.docs {
		if models.NormalizeActive(doc["isActive"]) {
			n++
		}
	}
	return n, f.err
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
