package archdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	doc         *Documentation
	repository  Repository
	blobStores  map[string]BlobStore
	eventSink   EventSink
	workspaceID uuid.UUID
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository used by Save and Load
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore registers a snapshot storage backend under the given name
func WithBlobStore(name string, store BlobStore) Option {
	return func(s *service) {
		if s.blobStores == nil {
			s.blobStores = make(map[string]BlobStore)
		}
		s.blobStores[name] = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithWorkspaceID sets the workspace identifier the documentation is
// persisted under. A random identifier is generated when not set.
func WithWorkspaceID(id uuid.UUID) Option {
	return func(s *service) {
		s.workspaceID = id
	}
}

// New creates a new documentation service bound to the given model
func New(model Model, options ...Option) (Service, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}

	s := &service{
		doc:        NewDocumentation(model),
		blobStores: make(map[string]BlobStore),
	}

	for _, option := range options {
		option(s)
	}

	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}
	if s.workspaceID == uuid.Nil {
		s.workspaceID = uuid.New()
	}

	return s, nil
}

// Section operations

func (s *service) AddSection(ctx context.Context, req AddSectionRequest) (*Section, error) {
	owner, err := s.resolveElement(req.ElementID, req.Type)
	if err != nil {
		return nil, err
	}

	section, err := s.doc.AddSection(owner, req.Type, req.Format, req.Content)
	if err != nil {
		return nil, err
	}

	s.fireSectionAdded(ctx, section)
	return section, nil
}

func (s *service) AddSectionFromFile(ctx context.Context, req AddSectionFromFileRequest) (*Section, error) {
	owner, err := s.resolveElement(req.ElementID, req.Type)
	if err != nil {
		return nil, err
	}

	section, err := s.doc.AddSectionFromFile(owner, req.Type, req.Format, req.Path)
	if err != nil {
		return nil, err
	}

	s.fireSectionAdded(ctx, section)
	return section, nil
}

func (s *service) AddContainerSection(ctx context.Context, req AddContainerSectionRequest) (*Section, error) {
	owner, err := s.resolveElement(req.ContainerID, SectionTypeComponents)
	if err != nil {
		return nil, err
	}

	section, err := s.doc.AddContainerSection(owner, req.Format, req.Content)
	if err != nil {
		return nil, err
	}

	s.fireSectionAdded(ctx, section)
	return section, nil
}

// resolveElement looks up an element identifier in the bound model, failing
// fast on identifiers that do not resolve.
func (s *service) resolveElement(elementID string, typ SectionType) (Element, error) {
	model := s.doc.Model()
	if model == nil {
		return nil, ErrModelNotBound
	}

	element := model.Element(elementID)
	if element == nil {
		return nil, &SectionError{
			ElementID: elementID,
			Type:      typ,
			Op:        "resolve",
			Err:       ErrDanglingReference,
		}
	}
	return element, nil
}

func (s *service) fireSectionAdded(ctx context.Context, section *Section) {
	if s.eventSink != nil {
		_ = s.eventSink.SectionAdded(ctx, section)
	}
}

func (s *service) ListSections(ctx context.Context) ([]Section, error) {
	return s.doc.Sections(), nil
}

// Image operations

func (s *service) IngestImages(ctx context.Context, dir string) (int, error) {
	count, err := s.doc.AddImages(dir)
	if err != nil {
		return 0, err
	}

	if s.eventSink != nil && count > 0 {
		_ = s.eventSink.ImagesIngested(ctx, dir, count)
	}
	return count, nil
}

func (s *service) ListImages(ctx context.Context) ([]Image, error) {
	return s.doc.Images(), nil
}

// Hydration

func (s *service) Hydrate(ctx context.Context) error {
	if err := s.doc.Hydrate(); err != nil {
		return err
	}

	if s.eventSink != nil {
		_ = s.eventSink.DocumentationHydrated(ctx, s.doc.sections.Len())
	}
	return nil
}

// Persistence

func (s *service) Save(ctx context.Context) error {
	if s.repository == nil {
		return fmt.Errorf("no repository configured")
	}

	if err := s.repository.SaveDocumentation(ctx, s.workspaceID, s.doc.Record()); err != nil {
		return err
	}

	if s.eventSink != nil {
		_ = s.eventSink.DocumentationSaved(ctx, s.workspaceID)
	}
	return nil
}

// Load restores the documentation from the repository and hydrates it
// before returning, so a restored aggregate is never observable with
// unresolved element references.
func (s *service) Load(ctx context.Context) error {
	if s.repository == nil {
		return fmt.Errorf("no repository configured")
	}

	rec, err := s.repository.LoadDocumentation(ctx, s.workspaceID)
	if err != nil {
		return err
	}

	s.doc.SetSections(rec.Sections)
	s.doc.SetImages(rec.Images)

	return s.Hydrate(ctx)
}

// Snapshot transfer

func (s *service) ExportSnapshot(ctx context.Context, backendName, key string) error {
	store, err := s.GetBackend(backendName)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(s.doc.Record())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	return store.Upload(ctx, key, bytes.NewReader(payload))
}

func (s *service) ImportSnapshot(ctx context.Context, backendName, key string) error {
	store, err := s.GetBackend(backendName)
	if err != nil {
		return err
	}

	reader, err := store.Download(ctx, key)
	if err != nil {
		return err
	}
	defer reader.Close()

	var rec DocumentationRecord
	if err := json.NewDecoder(reader).Decode(&rec); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.doc.SetSections(rec.Sections)
	s.doc.SetImages(rec.Images)

	return s.Hydrate(ctx)
}

// Storage backend operations

func (s *service) RegisterBackend(name string, store BlobStore) {
	if s.blobStores == nil {
		s.blobStores = make(map[string]BlobStore)
	}
	s.blobStores[name] = store
}

func (s *service) GetBackend(name string) (BlobStore, error) {
	store, ok := s.blobStores[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, name)
	}
	return store, nil
}

func (s *service) Documentation() *Documentation {
	return s.doc
}

func (s *service) WorkspaceID() uuid.UUID {
	return s.workspaceID
}
