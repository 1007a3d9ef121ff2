package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/internal/storage"
)

var errMediaHost = errors.New("media host unavailable")

// fakeMediaStore records calls and fails on demand.
type fakeMediaStore struct {
	mu         sync.Mutex
	next       int
	uploads    int
	urlUploads int
	deleted    []string

	failUpload bool
	failURL    bool
	failDelete map[string]bool
}

var _ storage.MediaStore = (*fakeMediaStore)(nil)

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{failDelete: map[string]bool{}}
}

func (f *fakeMediaStore) ref(folder string, kind model.MediaKind) model.MediaRef {
	f.next++
	publicID := fmt.Sprintf("%s/asset-%d", folder, f.next)
	return model.MediaRef{
		URL:      fmt.Sprintf("https://cdn.test/mariyae/%s/upload/%s.jpg", kind, publicID),
		PublicID: publicID,
	}
}

func (f *fakeMediaStore) Upload(ctx context.Context, data []byte, folder string, kind model.MediaKind) (model.MediaRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return model.MediaRef{}, errMediaHost
	}
	f.uploads++
	return f.ref(folder, kind), nil
}

func (f *fakeMediaStore) UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failURL {
		return model.MediaRef{}, errMediaHost
	}
	f.urlUploads++
	return f.ref(folder, model.MediaImage), nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, publicID string, kind model.MediaKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	if f.failDelete[publicID] {
		return errMediaHost
	}
	return nil
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
