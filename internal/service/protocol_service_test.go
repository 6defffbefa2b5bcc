package service

import (
	"coachdesk/coach-console/internal/domain"
	"coachdesk/coach-console/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileStorage records object operations in memory.
type fakeFileStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: make(map[string][]byte)}
}

func (f *fakeFileStorage) PutObject(_ context.Context, objectKey string, data []byte, _ string) error {
	f.objects[objectKey] = data
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	delete(f.objects, objectKey)
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// fakeTemplateRepo stores templates in memory.
type fakeTemplateRepo struct {
	templates []domain.Protocol
}

func (r *fakeTemplateRepo) Create(_ context.Context, protocol *domain.Protocol) error {
	r.templates = append(r.templates, *protocol)
	return nil
}

func (r *fakeTemplateRepo) GetByID(_ context.Context, id string) (*domain.Protocol, error) {
	for i := range r.templates {
		if r.templates[i].ID == id {
			return &r.templates[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTemplateRepo) GetAll(_ context.Context) ([]domain.Protocol, error) {
	return append([]domain.Protocol{}, r.templates...), nil
}

func TestSaveAsTemplateCopiesDocument(t *testing.T) {
	repo := &fakeTemplateRepo{}
	svc := NewProtocolService(repo, newFakeFileStorage())
	svc.SetTitle("Protocolo Verão")

	template, err := svc.SaveAsTemplate(context.Background())
	require.NoError(t, err)

	assert.True(t, template.IsTemplate)
	assert.Equal(t, "Protocolo Verão", template.Title)
	// The copy gets its own id so the editor can keep mutating the original.
	assert.NotEqual(t, svc.Current().ID, template.ID)
	assert.False(t, svc.Current().IsTemplate)
	require.Len(t, repo.templates, 1)
}

func TestExportUploadsAndLinksCurrentDocument(t *testing.T) {
	store := newFakeFileStorage()
	svc := NewProtocolService(&fakeTemplateRepo{}, store)
	svc.SetTitle("Protocolo Corte")

	export, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.Contains(t, export.ObjectKey, "protocols/"+svc.Current().ID+"/")
	assert.Equal(t, "https://storage.example.com/"+export.ObjectKey, export.URL)
	assert.Contains(t, string(store.objects[export.ObjectKey]), "Protocolo Corte")
}

func TestExportPrunesSupersededObject(t *testing.T) {
	store := newFakeFileStorage()
	svc := NewProtocolService(&fakeTemplateRepo{}, store)

	first, err := svc.Export(context.Background())
	require.NoError(t, err)
	second, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.ObjectKey, second.ObjectKey)

	// Only the latest export survives; the superseded one is deleted.
	assert.Equal(t, []string{first.ObjectKey}, store.deleted)
	assert.NotContains(t, store.objects, first.ObjectKey)
	assert.Contains(t, store.objects, second.ObjectKey)
}
