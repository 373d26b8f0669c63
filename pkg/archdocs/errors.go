package archdocs

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrDuplicateSection indicates a section with the same element and type
	// already exists in the store
	ErrDuplicateSection = errors.New("a section of this type already exists for this element")

	// ErrDanglingReference indicates a section's element identifier does not
	// resolve to an element in the bound model
	ErrDanglingReference = errors.New("element identifier does not resolve to a model element")

	// ErrModelNotBound indicates the documentation has no model to resolve
	// element identifiers against
	ErrModelNotBound = errors.New("documentation is not bound to a model")

	// ErrWorkspaceNotFound indicates no documentation is persisted for the
	// requested workspace
	ErrWorkspaceNotFound = errors.New("workspace documentation not found")

	// ErrBlobNotFound indicates a snapshot blob was not found in a blob store
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBackendNotFound indicates a named blob store backend is not registered
	ErrBackendNotFound = errors.New("storage backend not found")
)

// SectionError represents an error related to section operations
type SectionError struct {
	ElementID string
	Type      SectionType
	Op        string
	Err       error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section operation %s failed for element %q type %s: %v", e.Op, e.ElementID, e.Type, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// ImageError represents an error related to image ingestion
type ImageError struct {
	Name string
	Op   string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image operation %s failed for %q: %v", e.Op, e.Name, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}
