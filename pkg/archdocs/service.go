package archdocs

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for working with workspace
// documentation: section and image operations on the aggregate plus
// persistence and snapshot transfer.
type Service interface {
	// Section operations
	AddSection(ctx context.Context, req AddSectionRequest) (*Section, error)
	AddSectionFromFile(ctx context.Context, req AddSectionFromFileRequest) (*Section, error)
	AddContainerSection(ctx context.Context, req AddContainerSectionRequest) (*Section, error)
	ListSections(ctx context.Context) ([]Section, error)

	// Image operations
	IngestImages(ctx context.Context, dir string) (int, error)
	ListImages(ctx context.Context) ([]Image, error)

	// Hydration
	Hydrate(ctx context.Context) error

	// Persistence
	Save(ctx context.Context) error
	Load(ctx context.Context) error

	// Snapshot transfer
	ExportSnapshot(ctx context.Context, backendName, key string) error
	ImportSnapshot(ctx context.Context, backendName, key string) error

	// Storage backend operations
	RegisterBackend(name string, store BlobStore)
	GetBackend(name string) (BlobStore, error)

	// Documentation returns the underlying aggregate
	Documentation() *Documentation

	// WorkspaceID returns the workspace this service persists under
	WorkspaceID() uuid.UUID
}
