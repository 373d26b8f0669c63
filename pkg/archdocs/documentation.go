package archdocs

import (
	"os"
)

// Documentation is the documentation aggregate of a workspace: the section
// and image stores plus the model used to resolve element identifiers.
//
// A freshly constructed aggregate is bound to its model and safe to read
// immediately. An aggregate restored from persisted state (SetSections /
// SetImages) must be hydrated exactly once before section-to-element
// navigation is used.
type Documentation struct {
	model    Model
	sections *SectionStore
	images   *ImageStore
}

// NewDocumentation creates a documentation aggregate bound to the given model
func NewDocumentation(model Model) *Documentation {
	return &Documentation{
		model:    model,
		sections: NewSectionStore(),
		images:   NewImageStore(),
	}
}

// Model returns the bound model
func (d *Documentation) Model() Model {
	return d.model
}

// SetModel rebinds the aggregate to a model. Used when reconstructing a
// workspace from persisted state; Hydrate must run afterwards.
func (d *Documentation) SetModel(model Model) {
	d.model = model
}

// AddSection adds documentation content relating to a software system.
func (d *Documentation) AddSection(softwareSystem Element, typ SectionType, format Format, content string) (*Section, error) {
	return d.sections.Add(softwareSystem, typ, format, content)
}

// AddSectionFromFile adds documentation content relating to a software
// system, read from a file as UTF-8 text.
func (d *Documentation) AddSectionFromFile(softwareSystem Element, typ SectionType, format Format, path string) (*Section, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &SectionError{
			ElementID: softwareSystem.ElementID(),
			Type:      typ,
			Op:        "read",
			Err:       err,
		}
	}
	return d.AddSection(softwareSystem, typ, format, string(content))
}

// AddContainerSection adds documentation content relating to a container.
// Container documentation always uses the Components section type.
func (d *Documentation) AddContainerSection(container Element, format Format, content string) (*Section, error) {
	return d.sections.Add(container, SectionTypeComponents, format, content)
}

// AddContainerSectionFromFile adds documentation content relating to a
// container, read from a file as UTF-8 text.
func (d *Documentation) AddContainerSectionFromFile(container Element, format Format, path string) (*Section, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &SectionError{
			ElementID: container.ElementID(),
			Type:      SectionTypeComponents,
			Op:        "read",
			Err:       err,
		}
	}
	return d.AddContainerSection(container, format, string(content))
}

// AddImages imports the png/jpg/jpeg/gif files in the given directory into
// the image store. See ImageStore.IngestDirectory for the exact contract.
func (d *Documentation) AddImages(dir string) (int, error) {
	return d.images.IngestDirectory(dir)
}

// Sections returns a copy of the stored sections
func (d *Documentation) Sections() []Section {
	return d.sections.All()
}

// Images returns a copy of the stored images
func (d *Documentation) Images() []Image {
	return d.images.All()
}

// SetSections bulk-replaces the section store contents. Restore path for
// persisted state; the caller is expected to Hydrate before reads.
func (d *Documentation) SetSections(sections []Section) {
	d.sections.ReplaceAll(sections)
}

// SetImages bulk-replaces the image store contents
func (d *Documentation) SetImages(images []Image) {
	d.images.ReplaceAll(images)
}

// Record returns the aggregate's persisted form: its sections and images as
// flat records.
func (d *Documentation) Record() *DocumentationRecord {
	return &DocumentationRecord{
		Sections: d.Sections(),
		Images:   d.Images(),
	}
}

// Hydrate resolves every stored section's element identifier against the
// bound model and attaches the live element. It is idempotent. An identifier
// with no matching element fails the call with ErrDanglingReference; a
// missing model fails with ErrModelNotBound.
func (d *Documentation) Hydrate() error {
	if d.model == nil {
		return ErrModelNotBound
	}
	return d.sections.hydrate(d.model)
}
