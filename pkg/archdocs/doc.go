// Package archdocs manages the documentation attached to an
// architecture-model workspace: free-form text sections tied to model
// elements (software systems, containers) and binary images attached to the
// workspace as a whole.
//
// The package is organised around three pieces:
//
//   - SectionStore and ImageStore hold the documentation itself and enforce
//     the store-level invariants (one section per element and type, images
//     deduplicated by content).
//   - Documentation is the aggregate owning both stores together with a
//     reference to the model used to resolve element identifiers after a
//     restore (Hydrate).
//   - Service wraps a Documentation with persistence (Repository), snapshot
//     blob stores (BlobStore) and lifecycle events (EventSink), configured
//     through functional options.
//
// Sub-packages provide concrete repositories (repo/memory, repo/postgres),
// blob stores (storage/memory, storage/fs, storage/s3), a minimal model
// implementation (model), server configuration (config) and HTTP handlers
// (api).
package archdocs
