package memory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

type object struct {
	data      []byte
	updatedAt time.Time
}

// Backend is an in-memory implementation of the archdocs.BlobStore
// interface. Useful for tests and single-process setups.
type Backend struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New creates a new in-memory blob store
func New() archdocs.BlobStore {
	return &Backend{
		objects: make(map[string]object),
	}
}

func (b *Backend) Upload(ctx context.Context, key string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.objects[key] = object{data: data, updatedAt: time.Now().UTC()}
	b.mu.Unlock()

	return nil
}

func (b *Backend) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	b.mu.RLock()
	obj, exists := b.objects[key]
	b.mu.RUnlock()

	if !exists {
		return nil, archdocs.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return archdocs.ErrBlobNotFound
	}

	delete(b.objects, key)
	return nil
}

func (b *Backend) Meta(ctx context.Context, key string) (*archdocs.ObjectMeta, error) {
	b.mu.RLock()
	obj, exists := b.objects[key]
	b.mu.RUnlock()

	if !exists {
		return nil, archdocs.ErrBlobNotFound
	}

	return &archdocs.ObjectMeta{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: http.DetectContentType(obj.data),
		UpdatedAt:   obj.updatedAt,
	}, nil
}
