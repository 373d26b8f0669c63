package archdocs

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// DocumentationRecord is the flat persisted form of a workspace's
// documentation: the section and image records as handed to (and received
// from) the persistence layer. Sections inside a record carry element
// identifiers only; hydration happens after restore.
type DocumentationRecord struct {
	Sections []Section `json:"sections"`
	Images   []Image   `json:"images"`
}

// Repository defines the interface for documentation persistence
type Repository interface {
	// SaveDocumentation replaces the persisted documentation for a workspace
	SaveDocumentation(ctx context.Context, workspaceID uuid.UUID, rec *DocumentationRecord) error

	// LoadDocumentation returns the persisted documentation for a workspace
	LoadDocumentation(ctx context.Context, workspaceID uuid.UUID) (*DocumentationRecord, error)

	// DeleteDocumentation removes the persisted documentation for a workspace
	DeleteDocumentation(ctx context.Context, workspaceID uuid.UUID) error

	// ListWorkspaces returns the identifiers of workspaces with persisted documentation
	ListWorkspaces(ctx context.Context) ([]uuid.UUID, error)
}

// BlobStore defines the interface for snapshot storage backends
type BlobStore interface {
	// Upload stores a blob under the given key
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download returns a reader over the blob stored under the given key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob stored under the given key
	Delete(ctx context.Context, key string) error

	// Meta retrieves metadata for a stored blob
	Meta(ctx context.Context, key string) (*ObjectMeta, error)
}

// ObjectMeta contains metadata about a blob in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// EventSink defines the interface for documentation lifecycle events.
// Event failures are reported to the sink's own error handling; they never
// fail the triggering operation.
type EventSink interface {
	// SectionAdded is fired when a section is added
	SectionAdded(ctx context.Context, section *Section) error

	// ImagesIngested is fired after a directory ingestion inserts images
	ImagesIngested(ctx context.Context, dir string, count int) error

	// DocumentationHydrated is fired after element references are resolved
	DocumentationHydrated(ctx context.Context, sections int) error

	// DocumentationSaved is fired after documentation is persisted
	DocumentationSaved(ctx context.Context, workspaceID uuid.UUID) error
}
