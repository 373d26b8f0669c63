package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

// Repository implements archdocs.Repository using in-memory storage
type Repository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*archdocs.DocumentationRecord
}

// New creates a new in-memory repository
func New() archdocs.Repository {
	return &Repository{
		docs: make(map[uuid.UUID]*archdocs.DocumentationRecord),
	}
}

func (r *Repository) SaveDocumentation(ctx context.Context, workspaceID uuid.UUID, rec *archdocs.DocumentationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	r.docs[workspaceID] = copyRecord(rec)
	return nil
}

func (r *Repository) LoadDocumentation(ctx context.Context, workspaceID uuid.UUID) (*archdocs.DocumentationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.docs[workspaceID]
	if !exists {
		return nil, archdocs.ErrWorkspaceNotFound
	}

	// Return a copy to prevent external modifications
	return copyRecord(rec), nil
}

func (r *Repository) DeleteDocumentation(ctx context.Context, workspaceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[workspaceID]; !exists {
		return archdocs.ErrWorkspaceNotFound
	}

	delete(r.docs, workspaceID)
	return nil
}

func (r *Repository) ListWorkspaces(ctx context.Context) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.docs), nil
}

func copyRecord(rec *archdocs.DocumentationRecord) *archdocs.DocumentationRecord {
	return &archdocs.DocumentationRecord{
		Sections: append([]archdocs.Section(nil), rec.Sections...),
		Images:   append([]archdocs.Image(nil), rec.Images...),
	}
}
